package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

// Evento é a mensagem enviada ao painel administrativo quando algo
// relevante acontece no portal (novo cadastro, documento, decisão)
type Evento struct {
	Tipo     string      `json:"tipo"`
	Payload  interface{} `json:"payload,omitempty"`
	CriadoEm time.Time   `json:"criado_em"`
}

// Hub mantém as conexões do painel administrativo e distribui eventos.
// Todas as conexões recebem todos os eventos; não há salas.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processa registros e broadcasts. Deve rodar em uma goroutine
// dedicada durante toda a vida do servidor.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Conexão do painel registrada", map[string]interface{}{
				"user_id":        client.UserID,
				"total_conexoes": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Conexão do painel encerrada", map[string]interface{}{
				"user_id":        client.UserID,
				"total_conexoes": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Cliente lento: descarta a mensagem em vez de
					// bloquear o hub
					logger.Warn("Buffer de envio cheio, evento descartado", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvento serializa e envia um evento a todas as conexões
func (h *Hub) BroadcastEvento(tipo string, payload interface{}) {
	data, err := json.Marshal(Evento{
		Tipo:     tipo,
		Payload:  payload,
		CriadoEm: time.Now(),
	})
	if err != nil {
		logger.Error("Falha ao serializar evento do painel", err, map[string]interface{}{
			"tipo": tipo,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Fila de broadcast cheia, evento descartado", map[string]interface{}{
			"tipo": tipo,
		})
	}
}

// Register registra uma nova conexão no hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}
