// Package websocket pushes live order events to the admin dashboards so
// they don't have to poll the application themselves; the application
// polls the webhook backend (the source of truth) and fans the diffs
// out here.
package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ComandaApp/app/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	TypeOrderNew     MessageType = "order_new"
	TypeOrderUpdate  MessageType = "order_update"
	TypeNotification MessageType = "notification"
	TypeHeartbeat    MessageType = "heartbeat"
)

// ClientType identifies which dashboard a connection belongs to.
type ClientType string

const (
	ClientOrders  ClientType = "orders"
	ClientKitchen ClientType = "kitchen"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Client represents a connected dashboard
type Client struct {
	ID          string
	Type        ClientType
	Connection  *websocket.Conn
	Send        chan []byte
	Server      *Server
	ConnectedAt time.Time
	RemoteAddr  string
}

// envelope is a broadcast payload with its audience. An empty audience
// reaches every dashboard.
type envelope struct {
	audience ClientType
	payload  []byte
}

// Server is the hub fanning order events out to connected dashboards.
type Server struct {
	clients      map[string]*Client
	broadcast    chan envelope
	register     chan *Client
	unregister   chan *Client
	upgrader     websocket.Upgrader
	mu           sync.RWMutex
	port         string
	mdnsShutdown chan bool
}

// NewServer creates a new hub listening on port (":8091" format).
func NewServer(port string) *Server {
	return &Server{
		clients:      make(map[string]*Client),
		broadcast:    make(chan envelope),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		port:         port,
		mdnsShutdown: make(chan bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Dashboards connect from the local network.
				return true
			},
		},
	}
}

// Start runs the hub and serves the upgrade endpoint. Blocks.
func (s *Server) Start() error {
	go s.run()
	go s.startMDNS()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	log.Printf("WebSocket server starting on port %s", s.port)
	return http.ListenAndServe(s.port, mux)
}

// startMDNS announces the dashboard feed via mDNS/Zeroconf so tablets on
// the restaurant LAN can find it without configuration.
func (s *Server) startMDNS() {
	portStr := strings.TrimPrefix(s.port, ":")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Printf("mDNS: Invalid port format %s: %v", s.port, err)
		return
	}

	server, err := zeroconf.Register(
		"Comanda Server",
		"_comanda._tcp",
		"local.",
		port,
		[]string{"version=1.0"},
		nil,
	)
	if err != nil {
		log.Printf("mDNS: Failed to register service: %v", err)
		return
	}

	log.Println("mDNS: Comanda Server announced on _comanda._tcp.local")

	<-s.mdnsShutdown
	server.Shutdown()
	log.Println("mDNS: Service announcement stopped")
}

// Stop shuts the hub down and disconnects all dashboards.
func (s *Server) Stop() {
	select {
	case s.mdnsShutdown <- true:
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, client := range s.clients {
		close(client.Send)
		client.Connection.Close()
	}
	s.clients = make(map[string]*Client)
}

// BroadcastOrderNew announces an order that appeared in the backend
// since the last poll. All dashboards care about new orders.
func (s *Server) BroadcastOrderNew(order models.Order) {
	s.broadcastJSON("", TypeOrderNew, order)
}

// BroadcastOrderUpdate announces a status change on a known order.
// Once an order leaves the kitchen its updates only concern the orders
// dashboard.
func (s *Server) BroadcastOrderUpdate(order models.Order) {
	var audience ClientType
	switch order.Status {
	case models.StatusEnCamino, models.StatusEntregado:
		audience = ClientOrders
	}
	s.broadcastJSON(audience, TypeOrderUpdate, order)
}

// Notify sends a plain text notification to all dashboards.
func (s *Server) Notify(text string) {
	s.broadcastJSON("", TypeNotification, map[string]string{"text": text})
}

func (s *Server) broadcastJSON(audience ClientType, t MessageType, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error encoding %s broadcast: %v", t, err)
		return
	}
	msg, err := json.Marshal(Message{Type: t, Timestamp: time.Now(), Data: raw})
	if err != nil {
		log.Printf("Error encoding %s broadcast: %v", t, err)
		return
	}

	select {
	case s.broadcast <- envelope{audience: audience, payload: msg}:
	default:
		// Hub not running; drop rather than block the poll worker.
	}
}

// ClientCount returns the number of connected dashboards.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// run handles the main hub loop
func (s *Server) run() {
	ticker := time.NewTicker(30 * time.Second) // Heartbeat every 30 seconds
	defer ticker.Stop()

	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			log.Printf("Dashboard connected: %s (type: %s)", client.ID, client.Type)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.Send)
				log.Printf("Dashboard disconnected: %s", client.ID)
			}
			s.mu.Unlock()

		case message := <-s.broadcast:
			s.mu.Lock()
			for id, client := range s.clients {
				if message.audience != "" && client.Type != message.audience {
					continue
				}
				select {
				case client.Send <- message.payload:
				default:
					// Client buffer is full, disconnect
					delete(s.clients, id)
					close(client.Send)
				}
			}
			s.mu.Unlock()

		case <-ticker.C:
			s.sendHeartbeat()
		}
	}
}

func (s *Server) sendHeartbeat() {
	msg, _ := json.Marshal(Message{
		Type:      TypeHeartbeat,
		Timestamp: time.Now(),
		Data:      json.RawMessage(`{}`),
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		select {
		case client.Send <- msg:
		default:
		}
	}
}

// handleWebSocket handles WebSocket connection upgrades
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientType := ClientType(r.URL.Query().Get("type"))
	if clientType == "" {
		clientType = ClientOrders
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:          uuid.NewString(),
		Type:        clientType,
		Connection:  conn,
		Send:        make(chan []byte, 256),
		Server:      s,
		ConnectedAt: time.Now(),
		RemoteAddr:  r.RemoteAddr,
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth handles health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	clientCount := len(s.clients)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"healthy","clients":%d}`, clientCount)
}

// readPump drains the connection; dashboards only ever send heartbeats,
// everything else is ignored.
func (c *Client) readPump() {
	defer func() {
		c.Server.unregister <- c
		c.Connection.Close()
	}()

	c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Connection.SetPongHandler(func(string) error {
		c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Connection.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}

// writePump handles writing messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Connection.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
