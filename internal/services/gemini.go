package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizchat/internal/models"
)

// Generator produces reply text for an assembled conversation.
type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (string, error)
}

// UpstreamError is a non-success answer from the model provider.
type UpstreamError struct {
	Status  int
	Message string
	Details any
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error (status %d)", e.Status)
	}
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}

// Retryable reports whether the caller may try again later.
func (e *UpstreamError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status == http.StatusServiceUnavailable
}

var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
}

type GeminiService struct {
	client *genai.Client
}

// NewGeminiService creates a client for the Gemini API. endpoint is optional.
func NewGeminiService(ctx context.Context, apiKey, endpoint string) (*GeminiService, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{client: client}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// Generate sends the conversation as a chat whose last turn is the new user
// message. A response blocked by safety filters yields empty text.
func (s *GeminiService) Generate(ctx context.Context, req models.GenerateRequest) (string, error) {
	history, last, err := toGenaiContents(req.Contents)
	if err != nil {
		return "", err
	}

	model := s.client.GenerativeModel(req.Model)
	configureModel(model, req.Params)

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			slog.WarnContext(ctx, "gemini_response_blocked", "model", req.Model, "error", err)
			return "", nil
		}
		return "", classifyError(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			slog.DebugContext(ctx, "gemini_candidate_finish", "index", i, "finish_reason", cand.FinishReason)
		}
	}

	return extractFirstText(resp), nil
}

func configureModel(model *genai.GenerativeModel, params models.GenerationParams) {
	model.SetTemperature(params.Temperature)
	model.SetTopK(params.TopK)
	model.SetTopP(params.TopP)
	model.SetMaxOutputTokens(params.MaxOutputTokens)
	model.SafetySettings = safetySettings
}

// toGenaiContents splits the conversation into chat history and the final
// user turn that is sent as the new message.
func toGenaiContents(turns []models.ConversationTurn) ([]*genai.Content, *genai.Content, error) {
	if len(turns) == 0 {
		return nil, nil, errors.New("no contents to send")
	}

	contents := make([]*genai.Content, len(turns))
	for i, t := range turns {
		role := models.RoleModel
		if t.Role == models.RoleUser {
			role = models.RoleUser
		}
		contents[i] = &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Text)}}
	}

	last := contents[len(contents)-1]
	if last.Role != models.RoleUser {
		return nil, nil, errors.New("last turn must be a user turn")
	}
	return contents[:len(contents)-1], last, nil
}

// extractFirstText returns the first candidate's first text part, or "".
func extractFirstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return ""
	}
	if t, ok := cand.Content.Parts[0].(genai.Text); ok {
		return string(t)
	}
	return ""
}

// classifyError maps SDK errors onto UpstreamError. Errors that carry no
// upstream status (transport failures, cancellations) are returned wrapped.
func classifyError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &UpstreamError{
			Status:  gerr.Code,
			Message: gerr.Message,
			Details: rawDetails(gerr.Body),
		}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		return &UpstreamError{
			Status:  httpStatusFromCode(st.Code()),
			Message: st.Message(),
			Details: map[string]any{"code": st.Code().String(), "message": st.Message()},
		}
	}

	return fmt.Errorf("Gemini API error: %w", err)
}

func rawDetails(body string) any {
	if body == "" {
		return nil
	}
	if json.Valid([]byte(body)) {
		return json.RawMessage(body)
	}
	return body
}

func httpStatusFromCode(c codes.Code) int {
	switch c {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
