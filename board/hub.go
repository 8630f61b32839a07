package board

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/utils"
)

// Event types pushed to connected dashboards.
const (
	EventOrderCreated  = "order_created"
	EventOrderStatus   = "order_status"
	EventOrderAssigned = "order_assigned"
	EventStockAlert    = "stock_alert"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected board client (admin and worker dashboards)
// and broadcasts order/stock events to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a newly placed order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderStatus announces a status change.
func BroadcastOrderStatus(order models.Order) {
	broadcast(Message{Event: EventOrderStatus, Data: order})
}

// BroadcastOrderAssigned announces a worker assignment.
func BroadcastOrderAssigned(order models.Order) {
	broadcast(Message{Event: EventOrderAssigned, Data: order})
}

// BroadcastStockAlert announces a variant going low or out of stock.
func BroadcastStockAlert(data interface{}) {
	broadcast(Message{Event: EventStockAlert, Data: data})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("board: marshal broadcast: %v", err)
		}
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("board: send failed: %v", err)
			}
		}
	}
}
