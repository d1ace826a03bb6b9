package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"dungeon-core/internal/engine"
	"dungeon-core/internal/network"
	"dungeon-core/internal/version"
	"dungeon-core/pkg/api"
	"dungeon-core/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Server - наблюдательный HTTP/WebSocket-сервер над симуляцией.
// Симуляция публикует в него кадры, клиенты только читают.
type Server struct {
	Addr  string
	Hub   *network.Broadcaster
	debug *DebugHandler
	mux   *http.ServeMux
}

func New(addr string) *Server {
	s := &Server{
		Addr:  addr,
		Hub:   network.NewBroadcaster(),
		debug: NewDebugHandler(),
		mux:   http.NewServeMux(),
	}

	// Регистрируем роуты
	s.mux.HandleFunc("/ws", enableCORS(s.handleWS))
	s.mux.HandleFunc("/health", enableCORS(s.handleHealth))
	s.mux.HandleFunc("/version", enableCORS(s.handleVersion))
	s.debug.RegisterRoutes(s.mux)

	// Profiling
	s.mux.HandleFunc("/debug/pprof/", pprof.Index)
	s.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return s
}

// Handler возвращает роутер (нужен для httptest).
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Publish снимает кадр и debug-снапшот после хода и рассылает кадр
// подписчикам. Вызывается из горутины симуляции.
func (s *Server) Publish(g *engine.Game) {
	s.debug.update(g)
	s.Hub.Broadcast(BuildFrame(g, api.FrameTypeUpdate))
}

// Run запускает HTTP сервер и останавливает его при отмене ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Dungeon observer running on %s", s.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Hub, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
