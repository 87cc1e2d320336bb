package handlers

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roksva123/go-clickup-bridge/internal/model"
	"github.com/roksva123/go-clickup-bridge/internal/service"
)

// Discord signs every webhook request with these headers.
const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"
)

// InteractionHandler is the webhook entry point: it gates requests on the
// ed25519 signature, decodes the interaction and hands it to the dispatcher.
type InteractionHandler struct {
	PublicKey  ed25519.PublicKey
	Dispatcher *service.Dispatcher
}

// NewInteractionHandler parses the hex-encoded application public key.
func NewInteractionHandler(publicKeyHex string, dispatcher *service.Dispatcher) (*InteractionHandler, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode discord public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("discord public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return &InteractionHandler{PublicKey: ed25519.PublicKey(key), Dispatcher: dispatcher}, nil
}

// Handle processes POST /interactions. The body is read once; both the
// signature check and the JSON decode run over the same bytes. No command
// logic runs unless the signature verifies.
func (h *InteractionHandler) Handle(c *gin.Context) {
	signature := c.GetHeader(headerSignature)
	timestamp := c.GetHeader(headerTimestamp)
	if signature == "" || timestamp == "" {
		slog.Warn("interaction rejected: missing signature headers")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing signature or timestamp"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if !VerifySignature(h.PublicKey, signature, timestamp, body) {
		slog.Warn("interaction rejected: invalid signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid request signature"})
		return
	}

	var interaction model.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction payload"})
		return
	}

	resp := h.Dispatcher.Dispatch(c.Request.Context(), &interaction)
	c.JSON(http.StatusOK, resp)
}

// VerifySignature checks the hex signature over timestamp||body against the
// application's ed25519 public key.
func VerifySignature(key ed25519.PublicKey, signatureHex, timestamp string, body []byte) bool {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize || len(key) != ed25519.PublicKeySize {
		return false
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(key, msg, sig)
}
