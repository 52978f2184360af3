package site

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hyuniciel/inkwell/internal/debounce"
	"github.com/hyuniciel/inkwell/internal/listing"
	"github.com/hyuniciel/inkwell/internal/post"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type  string `json:"type"` // "query", "tag" or "clear"
	Query string `json:"query,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type      string `json:"type"` // "results" or "error"
	HTML      string `json:"html,omitempty"`
	Count     int    `json:"count"`
	ActiveTag string `json:"active_tag"`
	Query     string `json:"query"`
	Message   string `json:"message,omitempty"`
}

// liveSession renders list updates for one socket. Writes come from the
// read loop and from debounce timers, so they are serialised.
type liveSession struct {
	site *Site
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func (ls *liveSession) Render(posts []post.Post) error {
	return ls.RenderView(listing.View{}, posts)
}

func (ls *liveSession) RenderView(v listing.View, posts []post.Post) error {
	fragment, err := ls.site.renderCards(posts)
	if err != nil {
		return err
	}
	return ls.send(liveResponse{
		Type:      "results",
		HTML:      fragment,
		Count:     len(posts),
		ActiveTag: v.ActiveTag,
		Query:     v.Query,
	})
}

func (ls *liveSession) send(resp liveResponse) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.closed {
		return nil
	}
	return ls.conn.WriteJSON(resp)
}

func (ls *liveSession) sendError(message string) {
	if err := ls.send(liveResponse{Type: "error", Message: message}); err != nil {
		log.Printf("site: websocket write error: %v", err)
	}
}

func (ls *liveSession) close() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.closed = true
}

// handleLiveSearch re-renders the post list as the visitor types or picks
// tags. The socket URL carries the page's ?tag=&q= so the session starts from
// the list the page already shows.
func (s *Site) handleLiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("site: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sess := &liveSession{site: s, conn: conn}
	defer sess.close()

	ctrl := listing.NewController(s.posts, sess)
	ctrl.Restore(viewFromRequest(r))

	s.addSession(ctrl)
	defer s.removeSession(ctrl)

	deb := debounce.New(s.opts.Debounce)
	defer deb.Stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("site: websocket read: %v", err)
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			sess.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case "query":
			query := req.Query
			deb.Call(func() {
				if err := ctrl.Search(query); err != nil {
					log.Printf("site: live search: %v", err)
				}
			})
		case "tag":
			err = ctrl.ToggleTag(req.Tag)
		case "clear":
			deb.Cancel()
			err = ctrl.Clear()
		default:
			sess.sendError("unknown message type: " + req.Type)
			continue
		}
		if err != nil {
			log.Printf("site: live %s: %v", req.Type, err)
		}
	}
}

func (s *Site) addSession(ctrl *listing.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[ctrl] = struct{}{}
}

func (s *Site) removeSession(ctrl *listing.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, ctrl)
}

// Refresh re-renders every open live search with its current view. Call it
// after the post source has changed.
func (s *Site) Refresh() {
	s.mu.Lock()
	ctrls := make([]*listing.Controller, 0, len(s.sessions))
	for c := range s.sessions {
		ctrls = append(ctrls, c)
	}
	s.mu.Unlock()

	for _, c := range ctrls {
		if err := c.Refresh(); err != nil {
			log.Printf("site: refreshing live search: %v", err)
		}
	}
}
