package client

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"gitlab.com/open-soft/go-oco-bot/src/model"
)

// Listen opens a market data connection, forwards every raw message to
// eventChannel and subscribes to the given streams. Reconnects on read
// errors until done is closed.
func Listen(address string, eventChannel chan<- []byte, streams []string, connectionId int64, done <-chan struct{}) *websocket.Conn {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		log.Printf("Binance WS Events [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 3)
		connectionId++

		return Listen(address, eventChannel, streams, connectionId, done)
	}

	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				_ = connection.Close()

				select {
				case <-done:
					return
				default:
				}

				log.Printf("Binance WS Events, read [%s]: %s, wait and reconnect...", address, err.Error())
				time.Sleep(time.Second * 3)
				connectionId++
				Listen(address, eventChannel, streams, connectionId, done)
				return
			}

			select {
			case eventChannel <- message:
			case <-done:
				_ = connection.Close()
				return
			}
		}
	}()

	if len(streams) > 0 {
		socketRequest := model.SocketStreamsRequest{
			Id:     connectionId,
			Method: "SUBSCRIBE",
			Params: streams,
		}
		serialized, _ := json.Marshal(socketRequest)
		_ = connection.WriteMessage(websocket.TextMessage, serialized)
	}

	return connection
}
