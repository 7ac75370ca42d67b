package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
)

// MQTT topics the alert service publishes to
const (
	TopicTestFailure  = "estop/alerts/test-failure"
	TopicClockAnomaly = "estop/alerts/clock-anomaly"
)

// InterfaceAlertService publishes safety alerts to the MQTT broker.
// Publishing is best effort: a broker outage never blocks or fails the
// ledger write that triggered the alert.
type InterfaceAlertService interface {
	Connect() error
	Disconnect()
	PublishTestFailure(record *models.TestRecord, machineName, deviceName string) error
	PublishClockAnomaly(deviceID uint, testDate time.Time) error
}

// TestFailureAlert is the payload published when a safety device
// fails its test
type TestFailureAlert struct {
	EventID     string    `json:"event_id"`
	MachineID   uint      `json:"machine_id"`
	MachineName string    `json:"machine_name"`
	DeviceID    uint      `json:"device_id"`
	DeviceName  string    `json:"device_name"`
	Tester      string    `json:"tester"`
	Notes       string    `json:"notes,omitempty"`
	TestDate    time.Time `json:"test_date"`
}

// ClockAnomalyAlert is published when a ledger record carries a
// timestamp in the future
type ClockAnomalyAlert struct {
	EventID    string    `json:"event_id"`
	DeviceID   uint      `json:"device_id"`
	TestDate   time.Time `json:"test_date"`
	ObservedAt time.Time `json:"observed_at"`
}

// AlertService is the MQTT implementation of the alert publisher
type AlertService struct {
	Config *config.Config
	Client mqtt.Client

	connected      bool
	connectedMutex sync.RWMutex
}

// NewAlertService creates a new alert service and prepares its MQTT
// client. Connect must be called before publishing.
func NewAlertService(cfg *config.Config) InterfaceAlertService {
	s := &AlertService{Config: cfg}
	s.setupMQTTClient()
	return s
}

// setupMQTTClient configures the MQTT client options
func (s *AlertService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// unique client id so multiple service instances do not clash
	opts.SetClientID(fmt.Sprintf("%s-%s-%d", s.Config.MQTTClientID, uuid.New().String()[:8], time.Now().UnixNano()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	if strings.HasPrefix(s.Config.MQTTBrokerURL, "ssl://") || strings.HasPrefix(s.Config.MQTTBrokerURL, "tls://") || s.Config.MQTTSSLEnabled {
		log.Println("[MQTT] using TLS connection")
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true, // skipped unless a CA cert is provided
		}
		if s.Config.MQTTCACertPath != "" {
			log.Printf("[MQTT] using CA certificate: %s", s.Config.MQTTCACertPath)
		}
		opts.SetTLSConfig(tlsConfig)
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("[MQTT] connection lost: %v", err)
		s.connectedMutex.Lock()
		s.connected = false
		s.connectedMutex.Unlock()
	})

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Println("[MQTT] connected to", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.connected = true
		s.connectedMutex.Unlock()
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect establishes the broker connection
func (s *AlertService) Connect() error {
	token := s.Client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("timeout connecting to MQTT broker %s", s.Config.MQTTBrokerURL)
	}
	return token.Error()
}

// Disconnect closes the broker connection
func (s *AlertService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// PublishTestFailure publishes a failed-test alert
func (s *AlertService) PublishTestFailure(record *models.TestRecord, machineName, deviceName string) error {
	alert := TestFailureAlert{
		EventID:     uuid.New().String(),
		MachineID:   record.MachineID,
		MachineName: machineName,
		DeviceID:    record.DeviceID,
		DeviceName:  deviceName,
		Tester:      record.Username,
		Notes:       record.Notes,
		TestDate:    record.TestDate,
	}
	return s.publish(TopicTestFailure, alert)
}

// PublishClockAnomaly publishes a future-timestamp warning
func (s *AlertService) PublishClockAnomaly(deviceID uint, testDate time.Time) error {
	alert := ClockAnomalyAlert{
		EventID:    uuid.New().String(),
		DeviceID:   deviceID,
		TestDate:   testDate,
		ObservedAt: time.Now(),
	}
	return s.publish(TopicClockAnomaly, alert)
}

func (s *AlertService) publish(topic string, payload interface{}) error {
	s.connectedMutex.RLock()
	connected := s.connected
	s.connectedMutex.RUnlock()
	if !connected {
		return fmt.Errorf("MQTT client not connected, dropping alert on %s", topic)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := s.Client.Publish(topic, byte(s.Config.MQTTQoS), s.Config.MQTTRetained, data)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("timeout publishing alert to %s", topic)
	}
	return token.Error()
}
