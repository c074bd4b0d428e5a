package services

import (
	"encoding/json"
	"log"

	"chirp/models"
)

// HubService owns the live feed hub and fans feed events out to every
// connected websocket client.
type HubService struct {
	hub *models.Hub
}

func NewHubService() *HubService {
	service := &HubService{hub: models.NewHub()}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.hub.Clients[client] = true
			log.Printf("Feed client %s registered (user %d)", client.ID, client.UserID)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)
		}
	}
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; ok {
		delete(h.hub.Clients, client)
		close(client.Send)
		log.Printf("Feed client %s unregistered (user %d)", client.ID, client.UserID)
	}
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		select {
		case client.Send <- message:
		default:
			// slow consumer, drop it
			close(client.Send)
			delete(h.hub.Clients, client)
		}
	}
}

// BroadcastFeedEvent pushes a feed event to all live feed watchers.
// A marshal failure is logged and dropped; it never fails the request
// that triggered the event.
func (h *HubService) BroadcastFeedEvent(eventType string, data interface{}) {
	event := models.FeedEvent{
		Type: eventType,
		Data: data,
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling feed event: %v", err)
		return
	}

	h.hub.Broadcast <- messageBytes
}
