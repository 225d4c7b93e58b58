package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Submits a pending operation reference to a running tracker and watches
// the status surface until the operation settles.

func main() {
	serverAddr := flag.String("server", "http://localhost:8080", "Tracker HTTP address")
	operationID := flag.String("operation", "", "Operation id to track")
	fileName := flag.String("file", "meeting.wav", "Display name of the source audio")
	chatID := flag.String("chat", "", "Target conversation id (optional)")
	skillID := flag.String("skill", "", "Active skill id (optional)")
	flag.Parse()

	if *operationID == "" {
		log.Fatal("missing -operation")
	}

	text := "__PENDING_OPERATION:" + *operationID
	if *fileName != "" {
		text += ":" + url.PathEscape(*fileName)
	}

	payload, _ := json.Marshal(map[string]string{
		"text":          text,
		"chatId":        *chatID,
		"activeSkillId": *skillID,
	})

	resp, err := http.Post(*serverAddr+"/v1/transcriptions", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("failed to submit: %v", err)
	}
	defer resp.Body.Close()

	var submitted struct {
		Tracked     bool   `json:"tracked"`
		OperationID string `json:"operationId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}
	log.Printf("Submitted: tracked=%v operationId=%s", submitted.Tracked, submitted.OperationID)

	if !submitted.Tracked {
		return
	}

	for {
		time.Sleep(time.Second)

		st, err := http.Get(*serverAddr + "/v1/status")
		if err != nil {
			log.Printf("status request failed: %v", err)
			continue
		}

		var current struct {
			IsTranscribing bool   `json:"isTranscribing"`
			Error          string `json:"error"`
			ActiveChatID   string `json:"activeChatId"`
		}
		if err := json.NewDecoder(st.Body).Decode(&current); err != nil {
			st.Body.Close()
			log.Fatalf("failed to decode status: %v", err)
		}
		st.Body.Close()

		if current.IsTranscribing {
			log.Println("still transcribing...")
			continue
		}

		if current.Error != "" {
			log.Printf("finished with error: %s", current.Error)
		} else {
			log.Printf("finished, active chat: %s", current.ActiveChatID)
		}
		return
	}
}
