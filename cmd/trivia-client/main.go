package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Plays the trivia socket from a terminal: "n" asks for a question, "s" shows the state,
// anything else is sent as an answer.
func main() {
	url := flag.String("url", "ws://localhost:8080/api/v1/trivia/ws", "trivia websocket url")
	token := flag.String("token", os.Getenv("ECOTRACK_TOKEN"), "platform bearer token, empty plays anonymously")
	flag.Parse()

	header := http.Header{}
	if *token != "" {
		header.Set("Authorization", "Bearer "+*token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, header)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	messageQueue := make(chan Message)

	go func() {
		for {
			_, p, err := conn.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				os.Exit(0)
			}

			var pretty map[string]any
			if err := json.Unmarshal(p, &pretty); err != nil {
				log.Printf("Received:\n%s\n", p)
				continue
			}
			out, _ := json.MarshalIndent(pretty, "", "  ")
			log.Printf("Received:\n%s\n", out)
		}
	}()

	go func() {
		for message := range messageQueue {
			mJson, err := json.Marshal(message)
			if err != nil {
				log.Println("json marshal error:", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, mJson); err != nil {
				log.Println("write error:", err)
				return
			}
		}
	}()

	fmt.Println(`type "n" for a question, "s" for the score, anything else answers`)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "n":
			messageQueue <- Message{Type: "next_question"}
		case "s":
			messageQueue <- Message{Type: "state"}
		default:
			messageQueue <- Message{Type: "answer", Payload: map[string]string{"answer": line}}
		}
	}
	close(messageQueue)
}
