// Chatbot HTTP handlers.
//
// This file exposes the chatbot endpoints:
//   - GET    /chatbot/config     (public widget configuration)
//   - PUT    /chatbot/config     (admin, partial update)
//   - GET    /chatbot/qa         (admin, all rules in store order)
//   - POST   /chatbot/qa         (admin, create)
//   - PUT    /chatbot/qa/{id}    (admin, partial update)
//   - DELETE /chatbot/qa/{id}    (admin)
//   - POST   /chatbot/chat       (public, idempotent with Idempotency-Key)
//   - GET    /chatbot/messages   (admin, chat log page)
//   - GET    /chatbot/stats      (admin)
//
// Handlers are transport-thin: they bind and check input, call the services
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/services"
	"github.com/tbourn/go-portfolio-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// QAService manages the curated Q&A rules.
type QAService interface {
	List(ctx context.Context, f services.QAFilter) ([]domain.QARule, error)
	Create(ctx context.Context, in services.QARuleInput) (*domain.QARule, error)
	Update(ctx context.Context, id uint, p domain.QARulePatch) (*domain.QARule, error)
	Delete(ctx context.Context, id uint) error
}

// ConfigService reads and updates the chatbot configuration.
type ConfigService interface {
	Get(ctx context.Context) (*domain.ChatbotConfig, error)
	Update(ctx context.Context, p domain.ChatbotConfigPatch) (*domain.ChatbotConfig, error)
}

// ChatService answers visitor messages.
type ChatService interface {
	Chat(ctx context.Context, req services.ChatRequest) (*services.ChatReply, error)
}

// ChatLogService pages through logged chat turns.
type ChatLogService interface {
	ListPage(ctx context.Context, limit, offset int) (*services.TurnPage, error)
}

// StatsService computes the dashboard summary.
type StatsService interface {
	Summary(ctx context.Context) (*services.Stats, error)
}

//
// Handler wiring
//

// Services bundles the dependencies of Handlers.
type Services struct {
	QA     QAService
	Config ConfigService
	Chat   ChatService
	Log    ChatLogService
	Stats  StatsService
	Auth   AuthService
}

// Handlers groups the chatbot and auth endpoints.
type Handlers struct {
	qa     QAService
	config ConfigService
	chat   ChatService
	log    ChatLogService
	stats  StatsService
	auth   AuthService
}

// New constructs a Handlers instance bound to the given services.
func New(s Services) *Handlers {
	return &Handlers{
		qa:     s.QA,
		config: s.Config,
		chat:   s.Chat,
		log:    s.Log,
		stats:  s.Stats,
		auth:   s.Auth,
	}
}

//
// DTOs
//

// ConfigUpdateRequest is the JSON payload for PUT /chatbot/config. Omitted
// fields keep their stored value.
type ConfigUpdateRequest struct {
	BotName         *string `json:"bot_name" example:"RoboAssistant"`
	WelcomeMessage  *string `json:"welcome_message" example:"Hi! Ask me about my projects."`
	FallbackMessage *string `json:"fallback_message" example:"Sorry, I don't know that yet."`
	BotAvatar       *string `json:"bot_avatar" example:"/uploads/bot.png"`
	ThemeColor      *string `json:"theme_color" example:"#10b981"`
	IsActive        *bool   `json:"is_active" example:"true"`
	ResponseDelay   *int    `json:"response_delay" example:"500"`
}

// CreateQARequest is the JSON payload for POST /chatbot/qa. Keywords may be
// an array or a comma-separated string.
type CreateQARequest struct {
	Keywords Keywords `json:"keywords" swaggertype:"array,string" example:"hello,hi"`
	Question string   `json:"question" example:"Greeting"`
	Answer   string   `json:"answer" example:"Hello! How can I help?"`
	Category string   `json:"category" example:"greeting"`
	IsActive *bool    `json:"is_active" example:"true"`
}

// UpdateQARequest is the JSON payload for PUT /chatbot/qa/{id}. Omitted
// fields keep their stored value.
type UpdateQARequest struct {
	Keywords   *Keywords `json:"keywords" swaggertype:"array,string"`
	Question   *string   `json:"question"`
	Answer     *string   `json:"answer"`
	Category   *string   `json:"category"`
	IsActive   *bool     `json:"is_active"`
	OrderIndex *int      `json:"order_index"`
}

// ChatRequest is the JSON payload for POST /chatbot/chat.
type ChatRequest struct {
	Message     string  `json:"message" example:"Can I see your CV?"`
	VisitorID   string  `json:"visitor_id" example:"visitor_01J9Z3K4QAXH5N1V2M7B8C9D0E"`
	VisitorName *string `json:"visitor_name" example:"Ada"`
}

// ChatResponse is the reply to a visitor message. VisitorID is omitted while
// the chatbot is disabled.
type ChatResponse struct {
	Response  string `json:"response" example:"You can download my CV from the About section."`
	Matched   bool   `json:"matched" example:"true"`
	VisitorID string `json:"visitor_id,omitempty" example:"visitor_01J9Z3K4QAXH5N1V2M7B8C9D0E"`
}

// MessagesResponse is one page of the chat log.
type MessagesResponse struct {
	Messages []domain.ChatTurnView `json:"messages"`
	Total    int64                 `json:"total" example:"42"`
	Limit    int                   `json:"limit" example:"100"`
	Offset   int                   `json:"offset" example:"0"`
}

//
// Helpers
//

// ruleID parses the :id path parameter as a positive integer.
func ruleID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}

//
// Handlers
//

// GetConfig godoc
// @ID          getChatbotConfig
// @Summary     Get chatbot configuration
// @Description Returns the widget configuration used by the public site.
// @Tags        Chatbot
// @Produce     json
// @Success     200  {object}  domain.ChatbotConfig
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/config [get]
func (h *Handlers) GetConfig(c *gin.Context) {
	cfg, err := h.config.Get(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cfg)
}

// UpdateConfig godoc
// @ID          updateChatbotConfig
// @Summary     Update chatbot configuration
// @Description Merges the supplied fields into the configuration.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.ConfigUpdateRequest  true  "Fields to change"
// @Success     200   {object}  domain.ChatbotConfig
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/config [put]
func (h *Handlers) UpdateConfig(c *gin.Context) {
	var req ConfigUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	cfg, err := h.config.Update(c.Request.Context(), domain.ChatbotConfigPatch{
		BotName:         req.BotName,
		WelcomeMessage:  req.WelcomeMessage,
		FallbackMessage: req.FallbackMessage,
		BotAvatarURL:    req.BotAvatar,
		ThemeColor:      req.ThemeColor,
		IsActive:        req.IsActive,
		ResponseDelayMs: req.ResponseDelay,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cfg)
}

// ListQA godoc
// @ID          listQARules
// @Summary     List Q&A rules
// @Description Returns every rule, active or not, ordered by order_index then id.
// @Tags        Chatbot
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}   domain.QARule
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/qa [get]
func (h *Handlers) ListQA(c *gin.Context) {
	rules, err := h.qa.List(c.Request.Context(), services.QAFilter{})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, rules)
}

// CreateQA godoc
// @ID          createQARule
// @Summary     Create a Q&A rule
// @Description Adds a rule at the end of the order. Keywords, question and answer are required.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.CreateQARequest  true  "New rule"
// @Success     201   {object}  domain.QARule
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/qa [post]
func (h *Handlers) CreateQA(c *gin.Context) {
	var req CreateQARequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.qa.Create(c.Request.Context(), services.QARuleInput{
		Keywords: req.Keywords,
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		IsActive: req.IsActive,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// UpdateQA godoc
// @ID          updateQARule
// @Summary     Update a Q&A rule
// @Description Merges the supplied fields into the rule.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                       true  "Rule ID"  minimum(1)
// @Param       body  body      handlers.UpdateQARequest  true  "Fields to change"
// @Success     200   {object}  domain.QARule
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404   {object}  handlers.ErrorResponse  "Rule not found"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/qa/{id} [put]
func (h *Handlers) UpdateQA(c *gin.Context) {
	id, valid := ruleID(c)
	if !valid {
		return
	}
	var req UpdateQARequest
	if !bindJSON(c, &req) {
		return
	}
	p := domain.QARulePatch{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		IsActive:   req.IsActive,
		OrderIndex: req.OrderIndex,
	}
	if req.Keywords != nil {
		kw := []string(*req.Keywords)
		p.Keywords = &kw
	}
	r, err := h.qa.Update(c.Request.Context(), id, p)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteQA godoc
// @ID          deleteQARule
// @Summary     Delete a Q&A rule
// @Description Removes the rule. Logged turns keep their matched id.
// @Tags        Chatbot
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Rule ID"  minimum(1)
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Rule not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/qa/{id} [delete]
func (h *Handlers) DeleteQA(c *gin.Context) {
	id, valid := ruleID(c)
	if !valid {
		return
	}
	if err := h.qa.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Q&A rule deleted"})
}

// Chat godoc
// @ID          chat
// @Summary     Send a visitor message
// @Description Matches the message against the active rules and logs the turn. A repeated Idempotency-Key from the same client, visitor and message returns the stored reply with Idempotency-Replayed: true. Reusing a key for another request is a 409.
// @Tags        Chatbot
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string                false  "Client retry key"  example(3f2a-retry-1)
// @Param       body             body      handlers.ChatRequest  true   "Visitor message"
// @Success     200              {object}  handlers.ChatResponse
// @Header      200              {string}  Idempotency-Replayed  "true when served from a stored result"
// @Failure     400              {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409              {object}  handlers.ErrorResponse  "Idempotency-Key reused"
// @Failure     429              {object}  handlers.ErrorResponse  "Too many requests"
// @Failure     500              {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/chat [post]
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.VisitorName != nil && strings.TrimSpace(*req.VisitorName) == "" {
		req.VisitorName = nil
	}
	key, _ := middleware.GetIdempotencyKey(c)

	reply, err := h.chat.Chat(c.Request.Context(), services.ChatRequest{
		Message:          req.Message,
		VisitorID:        req.VisitorID,
		VisitorName:      req.VisitorName,
		IP:               c.ClientIP(),
		UserAgent:        c.Request.UserAgent(),
		IdempotencyKey:   key,
		IdempotencyScope: middleware.IdempotencyScope(c),
	})
	if err != nil {
		failService(c, err)
		return
	}
	if reply.Replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusOK, ChatResponse{
		Response:  reply.Text,
		Matched:   reply.Matched,
		VisitorID: reply.VisitorID,
	})
}

// ListMessages godoc
// @ID          listChatMessages
// @Summary     List logged chat turns
// @Description Returns turns newest first with the question of the matched rule.
// @Tags        Chatbot
// @Produce     json
// @Security    BearerAuth
// @Param       limit   query     int  false  "Page size"  minimum(1) maximum(500) default(100)
// @Param       offset  query     int  false  "Rows to skip"  minimum(0) default(0)
// @Success     200     {object}  handlers.MessagesResponse
// @Failure     401     {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500     {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), services.DefaultTurnPageSize)
	offset := utils.AtoiDefault(c.Query("offset"), 0)

	page, err := h.log.ListPage(c.Request.Context(), limit, offset)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, MessagesResponse{
		Messages: page.Items,
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// Stats godoc
// @ID          chatbotStats
// @Summary     Chatbot statistics
// @Description Totals, match rate, unique visitors, today's turns and the five most hit rules.
// @Tags        Chatbot
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  services.Stats
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatbot/stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	st, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}
