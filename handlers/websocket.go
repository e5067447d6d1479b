package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shubhankarvyas/medipulse-ai-insight/ws"
	"go.uber.org/zap"
)

// WSHandler upgrades dashboard connections and subscribes them to a
// patient's live reading stream.
type WSHandler struct {
	mgr *ws.Manager
	log *zap.Logger
}

func NewWSHandler(mgr *ws.Manager, log *zap.Logger) *WSHandler {
	return &WSHandler{mgr: mgr, log: log}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleReadingStream GET /ws?patient_id=<id>
// Stored readings for the patient are pushed as JSON text messages. The
// client is not expected to send anything; the read loop only exists to
// notice the connection going away.
func (h *WSHandler) HandleReadingStream(c *gin.Context) {
	patientID := c.Query("patient_id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing patient_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	h.mgr.Subscribe(patientID, conn)
	h.log.Info("dashboard subscribed", zap.String("patient_id", patientID))

	defer func() {
		h.mgr.Unsubscribe(patientID, conn)
		h.log.Info("dashboard unsubscribed", zap.String("patient_id", patientID))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read error", zap.String("patient_id", patientID), zap.Error(err))
			}
			return
		}
	}
}
