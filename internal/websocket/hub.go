package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now (should be restricted in production)
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client represents one WebSocket subscriber to a game feed
type Client struct {
	GameID string
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub maintains per-game subscriber sets and broadcasts play-by-play
// messages as games run
type Hub struct {
	clients     map[*Client]bool
	gameClients map[string][]*Client
	broadcast   chan gameMessage
	register    chan *Client
	unregister  chan *Client
	logger      *logrus.Logger
	mutex       sync.RWMutex
}

type gameMessage struct {
	gameID  string
	payload []byte
}

// PlayMessage is the wire envelope for one broadcast play
type PlayMessage struct {
	Type       string `json:"type"`
	GameID     string `json:"game_id"`
	PlayNumber int    `json:"play_number"`
	PlayType   string `json:"play_type"`
	Outcome    string `json:"outcome"`
	Yards      int    `json:"yards"`
	Quarter    int    `json:"quarter"`
	Clock      int    `json:"clock"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	Text       string `json:"text,omitempty"`
}

// NewHub creates a new WebSocket hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		gameClients: make(map[string][]*Client),
		broadcast:   make(chan gameMessage, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

// Run starts the hub loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.gameClients[client.GameID] = append(h.gameClients[client.GameID], client)
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"game_id":       client.GameID,
				"total_clients": len(h.clients),
			}).Info("WebSocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)

				gameClients := h.gameClients[client.GameID]
				for i, c := range gameClients {
					if c == client {
						h.gameClients[client.GameID] = append(gameClients[:i], gameClients[i+1:]...)
						break
					}
				}
				if len(h.gameClients[client.GameID]) == 0 {
					delete(h.gameClients, client.GameID)
				}
			}
			h.mutex.Unlock()

			h.logger.WithFields(logrus.Fields{
				"game_id":       client.GameID,
				"total_clients": len(h.clients),
			}).Info("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.mutex.RLock()
			for _, client := range h.gameClients[message.gameID] {
				select {
				case client.Send <- message.payload:
				default:
					// Slow consumer, drop the message
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// HandleWebSocket upgrades a game-feed subscription
func (h *Hub) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing game ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}

	client := &Client{
		GameID: gameID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Hub:    h,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastPlay publishes one applied play to the game's subscribers
func (h *Hub) BroadcastPlay(entry *models.AuditEntry) {
	if entry.PostState == nil {
		return
	}
	post := entry.PostState
	msg := PlayMessage{
		Type:       "play",
		GameID:     entry.GameID.String(),
		PlayNumber: entry.PlayNumber,
		PlayType:   string(entry.Play.PlayType),
		Outcome:    string(entry.Play.Outcome),
		Yards:      entry.Play.YardsGained,
		Quarter:    post.Clock.Quarter,
		Clock:      post.Clock.SecondsRemaining,
		HomeScore:  post.Scoreboard[post.HomeTeamID],
		AwayScore:  post.Scoreboard[post.AwayTeamID],
		Text:       entry.Play.Description,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal play message")
		return
	}
	select {
	case h.broadcast <- gameMessage{gameID: msg.GameID, payload: payload}:
	default:
		h.logger.Warn("WebSocket broadcast buffer full, dropping play")
	}
}

// Record lets the hub act as an audit sink for the state manager
func (h *Hub) Record(entry *models.AuditEntry) {
	h.BroadcastPlay(entry)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
