package handlers

import (
	"encoding/json"
	"log"
	"storenav-backend/models"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

type Client struct {
	Conn       *websocket.Conn
	ClientType string // "web" 또는 "viewer"
}

// 클라이언트 관리자
type ClientManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// 전역 클라이언트 관리자
var Manager = NewClientManager()

// NewClientManager - 클라이언트 관리자 생성
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan models.WebSocketMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn, 16),
	}
}

// 클라이언트 관리 시작
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("클라이언트 등록: %s (%s)", client.ClientType, client.Conn.RemoteAddr())

		case conn := <-manager.unregister:
			manager.mutex.Lock()
			if client, ok := manager.clients[conn]; ok {
				delete(manager.clients, conn)
				_ = conn.Close()
				log.Printf("클라이언트 해제: %s (%s)", client.ClientType, conn.RemoteAddr())
			}
			manager.mutex.Unlock()

		case message := <-manager.broadcast:
			manager.handleBroadcast(message)
		}
	}
}

func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	for conn, client := range manager.clients {
		// viewer 는 로봇 상태와 시뮬레이터 상태만 받는다
		if client.ClientType == "viewer" &&
			message.Type != models.MessageTypeRobotsUpdate &&
			message.Type != models.MessageTypeSimStatus {
			continue
		}

		if err := conn.WriteJSON(message); err != nil {
			log.Printf("전송 실패 (%s): %v", client.ClientType, err)
			select {
			case manager.unregister <- conn:
			default:
			}
		}
	}
}

// 외부에서 호출할 수 있는 브로드캐스트 메서드 (채널이 가득 차면 버린다)
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	select {
	case manager.broadcast <- msg:
	default:
		log.Println("⚠️ broadcast 채널 가득 참")
	}
}

func (manager *ClientManager) GetClientCount() map[string]int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	count := map[string]int{
		"web":    0,
		"viewer": 0,
	}

	for _, client := range manager.clients {
		count[client.ClientType]++
	}

	return count
}

// HandleSimWebSocket - 시뮬레이션 스트림 (?client=viewer 면 읽기 전용)
func HandleSimWebSocket(c *websocket.Conn) {
	clientType := "web"
	if c.Query("client") == "viewer" {
		clientType = "viewer"
	}

	client := &Client{
		Conn:       c,
		ClientType: clientType,
	}

	Manager.register <- client

	defer func() {
		Manager.unregister <- c
	}()

	// 연결 확인 메시지 전송
	welcomeMsg := models.WebSocketMessage{
		Type: models.MessageTypeSystemInfo,
		Data: map[string]interface{}{
			"message":      "시뮬레이션 스트림 연결됨",
			"client_type":  clientType,
			"connected_at": time.Now().Format(time.RFC3339),
		},
		Timestamp: time.Now().UnixMilli(),
	}
	_ = c.WriteJSON(welcomeMsg)

	for {
		var msg models.WebSocketMessage
		if err := c.ReadJSON(&msg); err != nil {
			log.Printf("웹 메시지 읽기 오류: %v", err)
			break
		}

		if clientType == "viewer" {
			continue
		}

		handleClientMessage(msg)
	}
}

// handleClientMessage - 웹 클라이언트 명령 처리
func handleClientMessage(msg models.WebSocketMessage) {
	if simulator == nil {
		log.Printf("⚠️ 시뮬레이터 없음, 메시지 무시: %s", msg.Type)
		return
	}

	switch msg.Type {
	case models.MessageTypeTaskCommand:
		raw, err := json.Marshal(msg.Data)
		if err != nil {
			return
		}
		if err := validateJSON(raw, taskSchema); err != nil {
			log.Printf("⚠️ 잘못된 작업 명령: %v", err)
			return
		}
		var cmd models.TaskCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return
		}
		if _, err := simulator.AssignTask(cmd); err != nil {
			log.Printf("❌ 작업 지시 실패: %v", err)
		}

	case models.MessageTypeStart:
		simulator.Start()

	case models.MessageTypeEmergencyStop:
		simulator.Stop()

	default:
		log.Printf("알 수 없는 메시지 타입: %s", msg.Type)
	}
}
