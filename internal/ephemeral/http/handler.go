// Package http provides HTTP handlers for ephemeral keypair and box operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ephemeral/internal/ephemeral/http/dto"
	"github.com/allisson/ephemeral/internal/ephemeral/usecase"
	"github.com/allisson/ephemeral/internal/httputil"
	customValidation "github.com/allisson/ephemeral/internal/validation"
)

// EphemeralHandler handles HTTP requests for the ephemeral use case.
type EphemeralHandler struct {
	ephemeralUseCase usecase.EphemeralUseCase
	logger           *slog.Logger
}

// NewEphemeralHandler creates a new ephemeral handler.
func NewEphemeralHandler(ephemeralUseCase usecase.EphemeralUseCase, logger *slog.Logger) *EphemeralHandler {
	return &EphemeralHandler{
		ephemeralUseCase: ephemeralUseCase,
		logger:           logger,
	}
}

// GenerateKeypairHandler generates and stores a keypair for an identifier,
// replacing any previous one.
// POST /v1/ephemeral/keypairs - Returns 201 Created with the public key.
func (h *EphemeralHandler) GenerateKeypairHandler(c *gin.Context) {
	var req dto.KeypairRequest
	if !h.bind(c, &req) {
		return
	}

	id, err := req.Identifier()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	publicKey, err := h.ephemeralUseCase.GenerateAndStore(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.KeypairResponse{PublicKey: publicKey})
}

// BoxHandler encrypts a message to a recipient public key.
// POST /v1/ephemeral/box - Returns 200 OK with the ciphertext.
func (h *EphemeralHandler) BoxHandler(c *gin.Context) {
	var req dto.BoxRequest
	if !h.bind(c, &req) {
		return
	}

	opts, err := req.Options()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	ciphertext, err := h.ephemeralUseCase.BoxMessage(c.Request.Context(), *req.Message, req.PublicKey, opts)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.BoxResponse{Ciphertext: ciphertext})
}

// UnboxHandler opens a ciphertext with the stored keypair of an identifier.
// POST /v1/ephemeral/unbox - Returns 200 OK with the base64 plaintext.
func (h *EphemeralHandler) UnboxHandler(c *gin.Context) {
	var req dto.UnboxRequest
	if !h.bind(c, &req) {
		return
	}

	id, err := req.Identifier()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	opts, err := req.Options()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	plaintext, err := h.ephemeralUseCase.UnboxMessage(c.Request.Context(), id, req.Ciphertext, opts)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UnboxResponse{Plaintext: plaintext})
}

// DeleteKeypairHandler removes the keypair of an identifier.
// DELETE /v1/ephemeral/keypairs - Returns 204 No Content, 404 if nothing was stored.
func (h *EphemeralHandler) DeleteKeypairHandler(c *gin.Context) {
	var req dto.KeypairRequest
	if !h.bind(c, &req) {
		return
	}

	id, err := req.Identifier()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.ephemeralUseCase.DeleteKeyPair(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

type validatable interface {
	Validate() error
}

// bind decodes and validates the JSON body, writing the error response on failure.
func (h *EphemeralHandler) bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}

	return true
}
