package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationQueryNormalize(t *testing.T) {
	tests := []struct {
		name     string
		query    PaginationQuery
		pageNum  int
		pageSize int
	}{
		{"zero value defaults", PaginationQuery{}, 1, 20},
		{"explicit values pass through", PaginationQuery{PageNum: 3, PageSize: 50}, 3, 50},
		{"negative page clamps to first", PaginationQuery{PageNum: -2, PageSize: 10}, 1, 10},
		{"zero size defaults", PaginationQuery{PageNum: 2}, 2, 20},
		{"oversized page caps at 100", PaginationQuery{PageNum: 1, PageSize: 5000}, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageNum, pageSize := tt.query.Normalize()
			assert.Equal(t, tt.pageNum, pageNum)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}
