package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/shubhankarvyas/medipulse-ai-insight/entities"
)

// Manager keeps track of dashboard websocket subscriptions, keyed by the
// patient whose readings they want to watch. A patient can have any number
// of watchers (doctor dashboard, patient dashboard, ...).
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]map[*websocket.Conn]struct{} // patientID -> conns
}

func NewManager() *Manager {
	return &Manager{subscribers: make(map[string]map[*websocket.Conn]struct{})}
}

// Subscribe registers a connection for a patient's reading stream.
func (m *Manager) Subscribe(patientID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subscribers[patientID]; !ok {
		m.subscribers[patientID] = make(map[*websocket.Conn]struct{})
	}
	m.subscribers[patientID][conn] = struct{}{}
}

// Unsubscribe removes and closes a connection.
func (m *Manager) Unsubscribe(patientID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conns, ok := m.subscribers[patientID]; ok {
		if _, ok := conns[conn]; ok {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(m.subscribers, patientID)
		}
	}
}

// Publish sends a stored reading to every subscriber of its patient.
// Connections that fail to write are dropped.
func (m *Manager) Publish(reading entities.Reading) {
	payload, err := json.Marshal(reading)
	if err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.subscribers[reading.PatientID]
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(m.subscribers, reading.PatientID)
	}
}

// SubscriberCount returns how many connections watch a patient.
func (m *Manager) SubscriberCount(patientID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers[patientID])
}
