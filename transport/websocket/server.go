package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
)

type gameManager interface {
	CreateRoom(ctx context.Context, playerID, name string) (string, error)
	JoinRoom(ctx context.Context, code, playerID, name string) (entity.RoomSnapshot, error)

	EnqueueForMatch(ctx context.Context, playerID, name string) error
	CancelQueue(ctx context.Context, playerID string)
	TryMatch(ctx context.Context) (entity.RoomSnapshot, bool, error)

	SubmitFleet(ctx context.Context, code, playerID string, placements []entity.ShipPlacement) (bool, entity.RoomSnapshot, error)
	Fire(ctx context.Context, code, playerID string, x, y int) (*entity.ShotResult, error)

	LeaveRoom(ctx context.Context, code, playerID string) (entity.RoomSnapshot, bool)
	Disconnect(ctx context.Context, playerID string) (entity.RoomSnapshot, bool)
}

type handlerFunc func(ctx context.Context, client *client, request *Request) error

type Server struct {
	logger   *slog.Logger
	game     gameManager
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		clients:  make(map[string]*client),
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionQueueMatch] = server.handleQueueMatch
	server.handlers[actionCancelQueue] = server.handleCancelQueue
	server.handlers[actionPlaceShips] = server.handlePlaceShips
	server.handlers[actionFire] = server.handleFire
	server.handlers[actionLeaveRoom] = server.handleLeaveRoom

	return server
}

// Handler - returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and assigns the player an id.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(pkg.GeneratePlayerID(), conn)
	that.register(c)

	log.Info("WebSocket connection established", "playerID", c.id)

	defer func() {
		that.unregister(c)
		that.handleDisconnect(ctx, c)
		_ = conn.Close()
	}()

	if err = c.send(actionConnect, Reply{OK: true, PlayerID: c.id}); err != nil {
		log.Error("failed to send player id", "error", err)
		return
	}

	stop := make(chan struct{})
	defer close(stop)
	go c.keepAlive(stop)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Info("connection closed", "playerID", c.id, "reason", err)
	}
}

// handleMessages - processes messages from the client until the connection closes.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages", "playerID", c.id)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				continue
			}

			return err
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		request := &Request{}
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, request); err != nil {
				log.Warn("failed to unmarshal payload", "action", message.Action, "error", err)
				_ = c.send(message.Action, Reply{Error: "malformed payload"})
				continue
			}
		}

		if err := handler(ctx, c, request); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Server) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, c.id)
}

// broadcast - sends the event to every connected player in playerIDs.
func (that *Server) broadcast(playerIDs []string, action string, payload any) {
	that.mu.RLock()
	targets := make([]*client, 0, len(playerIDs))
	for _, id := range playerIDs {
		if c, ok := that.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	that.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(action, payload); err != nil {
			that.logger.Warn("failed to deliver event", "action", action, "playerID", c.id, "error", err)
		}
	}
}

type client struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
	}
}

func (that *client) send(action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) keepAlive(stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
