package main

import (
	"encoding/json"
	"math"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"projectdrift/backend/internal/controller"
	"projectdrift/backend/internal/shared/config"
	"projectdrift/backend/internal/shared/logger"
	"projectdrift/backend/internal/shared/types"
	"projectdrift/backend/internal/world"
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

type server struct {
	log      logger.Logger
	cfg      config.Config
	sim      *world.World
	car      *controller.CarController
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	clients  map[string]*client
	controls types.Controls
	tick     uint64
}

func main() {
	log := logger.New("driveserver")

	cfg, err := config.Load(getEnv("DRIFT_CONFIG_DIR", "."))
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	terrain := demoTerrain()
	sim := world.New(terrain, world.Params{
		Gravity:       mgl64.Vec3{0, cfg.World.GravityY, 0},
		LinearDamping: cfg.World.LinearDamping,
	})

	spawn := mgl64.Vec3{0, cfg.World.SpawnY, 0}
	body := world.NewSphereBody(spawn, cfg.World.BodyRadius, cfg.World.BodyMass)
	sim.AddBody(body)

	car, err := controller.New(body, sim.DownQuery(body), cfg.Tuning)
	if err != nil {
		log.Fatal().Err(err).Msg("controller setup failed")
	}

	s := &server{
		log: log,
		cfg: cfg,
		sim: sim,
		car: car,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[string]*client),
	}

	go s.runLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", cfg.Server.ListenAddr).Msg("drive server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// demoTerrain is a gentle rolling heightfield so slope alignment has
// something to align to.
func demoTerrain() *world.Heightfield {
	const size = 64
	const cell = 4.0
	heights := make([][]float64, size)
	for row := range heights {
		heights[row] = make([]float64, size)
		for col := range heights[row] {
			x := float64(col) * cell
			z := float64(row) * cell
			heights[row][col] = 1.5*math.Sin(x/24) + 1.2*math.Cos(z/30)
		}
	}
	return world.NewHeightfield(heights, cell)
}

// runLoop interleaves the fixed physics tick and the variable presentation
// tick on a single goroutine, preserving the controller's documented
// ordering guarantee.
func (s *server) runLoop() {
	physics := time.NewTicker(time.Second / time.Duration(s.cfg.Server.PhysicsHz))
	presentation := time.NewTicker(time.Second / time.Duration(s.cfg.Server.PresentationHz))
	defer physics.Stop()
	defer presentation.Stop()

	physicsDt := 1.0 / float64(s.cfg.Server.PhysicsHz)
	last := time.Now()

	for {
		select {
		case <-physics.C:
			s.mu.Lock()
			s.car.OnPhysicsStep(physicsDt)
			s.sim.Step(physicsDt)
			s.tick++
			s.mu.Unlock()
		case <-presentation.C:
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now

			s.mu.Lock()
			s.car.OnPresentationStep(dt, s.controls)
			view := s.car.View(s.tick)
			s.mu.Unlock()

			s.broadcast(view)
		}
	}
}

func (s *server) broadcast(view types.CarView) {
	env := types.ServerEnvelope{
		Type:     "view",
		Tick:     view.Tick,
		View:     &view,
		ServerMS: time.Now().UTC().UnixMilli(),
	}
	payload, err := json.Marshal(env)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal view failed")
		return
	}

	s.mu.RLock()
	for _, c := range s.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
	s.mu.RUnlock()
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("client_id")
	if id == "" {
		id = time.Now().UTC().Format("150405.000000000")
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade error")
		return
	}

	c := &client{id: id, conn: conn, send: make(chan []byte, 64)}
	s.register(c)
	s.log.Info().Str("client", id).Str("remote", r.RemoteAddr).Msg("client connected")

	welcome := types.ServerEnvelope{
		Type:     "welcome",
		ServerMS: time.Now().UTC().UnixMilli(),
		Message:  "connected",
	}
	if payload, err := json.Marshal(welcome); err == nil {
		select {
		case c.send <- payload:
		default:
		}
	}

	go s.writePump(c)
	s.readPump(c)
}

func (s *server) readPump(c *client) {
	defer func() {
		s.unregister(c.id)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info().Str("client", c.id).Msg("client disconnected")
				return
			}
			s.log.Error().Str("client", c.id).Err(err).Msg("read error")
			return
		}

		var in types.ClientEnvelope
		if err := json.Unmarshal(msg, &in); err != nil {
			s.sendError(c, "bad_payload")
			continue
		}

		switch in.Type {
		case "controls":
			if in.Controls == nil {
				s.sendError(c, "missing_controls")
				continue
			}
			s.mu.Lock()
			s.controls = *in.Controls
			s.mu.Unlock()
		case "ping":
			pong := types.ServerEnvelope{Type: "pong", ServerMS: time.Now().UTC().UnixMilli()}
			if payload, err := json.Marshal(pong); err == nil {
				select {
				case c.send <- payload:
				default:
				}
			}
		default:
			s.sendError(c, "unsupported_message_type")
		}
	}
}

func (s *server) writePump(c *client) {
	ticker := time.NewTicker(20 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				return
			}
		}
	}
}

func (s *server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
}

func (s *server) unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[id]; ok {
		close(c.send)
		delete(s.clients, id)
	}
}

func (s *server) sendError(c *client, message string) {
	payload, _ := json.Marshal(types.ServerEnvelope{
		Type:    "error",
		Message: message,
	})
	select {
	case c.send <- payload:
	default:
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
