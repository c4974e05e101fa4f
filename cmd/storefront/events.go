package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	cartdomain "github.com/dwikikusuma/food-storefront/internal/cart/domain"
)

// cartEvents streams the session's cart as server-sent events: the current
// cart first, then one "cart" event per change. A slow reader only ever sees
// the latest cart; intermediate states are dropped.
func (s *server) cartEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The server's write timeout would otherwise cut the stream.
	_ = rc.SetWriteDeadline(time.Time{})

	cart := sessionFrom(r.Context()).Cart
	log := loggerFrom(r.Context())

	updates := make(chan cartdomain.Cart, 1)
	unsubscribe := cart.Subscribe(func(c cartdomain.Cart) {
		for {
			select {
			case updates <- c:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "cart", toCartView(cart.CurrentCart())); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		log.Warn("cart stream cannot flush", slog.Any("err", err))
		return
	}

	every := s.pingEvery
	if every <= 0 {
		every = 25 * time.Second
	}
	ping := time.NewTicker(every)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case c := <-updates:
			if err := writeEvent(w, "cart", toCartView(c)); err != nil {
				log.Debug("cart stream closed", slog.Any("err", err))
				return
			}
		case <-ping.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
