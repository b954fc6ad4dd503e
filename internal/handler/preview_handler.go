package handler

import (
	"strings"

	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/pkg/serverutils"
	internalWS "agency-site-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// PreviewHandler upgrades authenticated editors onto the live preview socket.
type PreviewHandler struct {
	hub      *internalWS.Hub
	renderer internalWS.Renderer
	logger   logger.ILogger
}

func NewPreviewHandler(hub *internalWS.Hub, renderer internalWS.Renderer, log logger.ILogger) *PreviewHandler {
	return &PreviewHandler{
		hub:      hub,
		renderer: renderer,
		logger:   log,
	}
}

// RegisterRoutes must run before the admin group installs its bearer-only middleware.
func (h *PreviewHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/admin/v1/preview/ws", h.ServeWs)
}

// ServeWs accepts the token as ?token= (browsers) or a bearer header.
func (h *PreviewHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	editorID, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("PreviewHandler", "Invalid token in handshake", map[string]interface{}{"ip": c.IP()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("PreviewHandler", "Preview session started", map[string]interface{}{"editor_id": editorID})
		internalWS.ServeWs(h.hub, conn, editorID, h.renderer)
		h.logger.Info("PreviewHandler", "Preview session ended", map[string]interface{}{"editor_id": editorID})
	})(c)
}
