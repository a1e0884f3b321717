package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bizchat/internal/logging"
	"bizchat/internal/models"
	"bizchat/internal/repository"
)

// CustomerMarker is the label a templating caller puts in front of the real
// customer text. When present, only the text after its last occurrence is
// treated as the message.
const CustomerMarker = "Customer:"

// Generation defaults applied when the caller leaves a parameter at zero.
const (
	DefaultTemperature     float32 = 0.85
	DefaultTopK            int32   = 40
	DefaultTopP            float32 = 0.95
	DefaultMaxOutputTokens int32   = 512
)

// Envelope error strings.
const (
	ErrMsgNoMessage     = "No message provided"
	ErrMsgRateLimited   = "Rate limit exceeded. Please try again in a moment."
	ErrMsgOverloaded    = "Service temporarily overloaded. Please retry."
	ErrMsgUpstreamError = "Failed to get response from AI"
	ErrMsgInternal      = "Internal server error"

	// FallbackReply is used when the provider answered without any text.
	FallbackReply = "I apologize, but I'm having trouble generating a response. Please contact us for assistance."

	// ClientPromptBusinessName labels replies produced from a caller-supplied prompt.
	ClientPromptBusinessName = "Assistant"
)

type RelayService struct {
	generator       Generator
	profiles        *repository.ProfileRepo
	defaultModel    string
	defaultBusiness string
}

func NewRelayService(generator Generator, profiles *repository.ProfileRepo, defaultModel, defaultBusiness string) *RelayService {
	return &RelayService{
		generator:       generator,
		profiles:        profiles,
		defaultModel:    defaultModel,
		defaultBusiness: defaultBusiness,
	}
}

// Reply runs a decoded request through prompt resolution, context assembly
// and the upstream call, and returns the envelope with its HTTP status.
func (s *RelayService) Reply(ctx context.Context, req *models.RelayRequest) (int, models.RelayResponse) {
	log := logging.FromContext(ctx)

	message := ExtractMessage(req)
	if message == "" {
		return http.StatusBadRequest, models.RelayResponse{Success: false, Error: ErrMsgNoMessage}
	}

	systemPrompt, businessName := s.ResolvePrompt(req)

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.defaultModel
	}

	genReq := models.GenerateRequest{
		Model:    model,
		Contents: BuildContents(systemPrompt, req.History, message),
		Params:   ResolveParams(req),
	}

	log.Info("relay_upstream_call",
		"model", model,
		"business", businessName,
		"history_turns", len(genReq.Contents)-2,
	)

	text, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return mapUpstreamError(ctx, err)
	}

	if text == "" {
		log.Warn("relay_empty_upstream_text", "model", model)
		text = FallbackReply
	}

	return http.StatusOK, models.RelayResponse{
		Success:  true,
		Reply:    text,
		Response: text,
		Message:  text,
		Text:     text,
		Model:    model,
		Business: businessName,
	}
}

// ExtractMessage picks message or prompt and applies the CustomerMarker contract.
func ExtractMessage(req *models.RelayRequest) string {
	message := req.Message
	if message == "" {
		message = req.Prompt
	}
	if i := strings.LastIndex(message, CustomerMarker); i >= 0 {
		message = message[i+len(CustomerMarker):]
	}
	return strings.TrimSpace(message)
}

// ResolvePrompt returns the system prompt and business display name.
// A caller-supplied prompt wins; otherwise the business profile table is used.
func (s *RelayService) ResolvePrompt(req *models.RelayRequest) (string, string) {
	for _, p := range []string{req.SystemPrompt, req.SystemInstruction} {
		if strings.TrimSpace(p) != "" {
			return p, ClientPromptBusinessName
		}
	}

	id := firstNonEmpty(req.Business, req.BusinessID, s.defaultBusiness)
	profile, _ := s.profiles.Get(id)
	return profile.SystemPrompt, profile.DisplayName
}

// BuildContents orders the upstream conversation: the system prompt as the
// opening user turn, the recent history, then the current message. The system
// prompt travels as a turn because not every model accepts system instructions.
func BuildContents(systemPrompt string, history []models.ConversationTurn, message string) []models.ConversationTurn {
	recent := models.LastTurns(history, models.MaxHistoryTurns)

	contents := make([]models.ConversationTurn, 0, len(recent)+2)
	contents = append(contents, models.ConversationTurn{Role: models.RoleUser, Text: systemPrompt})
	for _, t := range recent {
		role := models.RoleModel
		if t.Role == models.RoleUser {
			role = models.RoleUser
		}
		contents = append(contents, models.ConversationTurn{Role: role, Text: t.Text})
	}
	contents = append(contents, models.ConversationTurn{Role: models.RoleUser, Text: message})
	return contents
}

// ResolveParams fills zero-valued generation parameters with the defaults.
func ResolveParams(req *models.RelayRequest) models.GenerationParams {
	p := models.GenerationParams{
		Temperature:     req.Temperature,
		TopK:            req.TopK,
		TopP:            req.TopP,
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if p.Temperature == 0 {
		p.Temperature = DefaultTemperature
	}
	if p.TopK == 0 {
		p.TopK = DefaultTopK
	}
	if p.TopP == 0 {
		p.TopP = DefaultTopP
	}
	if p.MaxOutputTokens == 0 {
		p.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return p
}

// InternalError is the envelope for failures outside the upstream contract.
func InternalError(err error) models.RelayResponse {
	return models.RelayResponse{Success: false, Error: ErrMsgInternal, Message: err.Error()}
}

func mapUpstreamError(ctx context.Context, err error) (int, models.RelayResponse) {
	log := logging.FromContext(ctx)

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		log.Error("relay_upstream_failed", "error", err)
		return http.StatusInternalServerError, InternalError(err)
	}

	switch upErr.Status {
	case http.StatusTooManyRequests:
		log.Warn("relay_upstream_rate_limited")
		return upErr.Status, models.RelayResponse{Success: false, Error: ErrMsgRateLimited, Retry: true}
	case http.StatusServiceUnavailable:
		log.Warn("relay_upstream_overloaded")
		return upErr.Status, models.RelayResponse{Success: false, Error: ErrMsgOverloaded, Retry: true}
	}

	log.Error("relay_upstream_error", "status", upErr.Status, "error", upErr.Message)

	status := upErr.Status
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	msg := upErr.Message
	if msg == "" {
		msg = ErrMsgUpstreamError
	}
	return status, models.RelayResponse{Success: false, Error: msg, Details: upErr.Details}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
