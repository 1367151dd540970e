package services

import (
	cryptorand "crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"

	"github.com/sayohat/backend/internal/models"
)

// AgentService owns operator accounts: login, account info and the
// admin-only management endpoints.
type AgentService struct {
	db        *sql.DB
	validator *ValidationHelper
}

func NewAgentService(db *sql.DB) *AgentService {
	return &AgentService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"operator@agency.uz"` // Operator email
	Password string `json:"password" validate:"required,min=6" example:"password123"`     // Operator password
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	Agent models.Agent `json:"agent"`                                                   // Operator information
}

type createAgentRequest struct {
	Name           string  `json:"name" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	Role           string  `json:"role" validate:"omitempty,oneof=agent admin"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

// Login authenticates an operator
// @Summary Login operator
// @Description Authenticate an operator with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (s *AgentService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	var agent models.Agent
	var hashedPassword string
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, name, email, role, commission_rate, password, created_at
		FROM agents WHERE email = $1
	`, strings.ToLower(req.Email)).Scan(&agent.ID, &agent.Name, &agent.Email,
		&agent.Role, &agent.CommissionRate, &hashedPassword, &agent.CreatedAt)
	if err != nil {
		log.Printf("[AUTH] Operator not found for email: %s", req.Email)
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}

	if !verifyPassword(req.Password, hashedPassword) {
		log.Printf("[AUTH] Invalid password for operator: %s", req.Email)
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}

	now := time.Now()
	if _, err := s.db.ExecContext(r.Context(),
		`UPDATE agents SET last_login = $1 WHERE id = $2`, now, agent.ID); err != nil {
		log.Printf("[AUTH] Failed to record last login for %s: %v", agent.ID, err)
	}
	agent.LastLogin = &now

	token, err := generateJWT(agent.ID, agent.Role)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for operator %s: %v", agent.ID, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Login successful for operator %s", agent.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{Token: token, Agent: agent})
}

// GetAccount returns the authenticated operator's profile
// @Summary Get own profile
// @Tags agents
// @Produce json
// @Success 200 {object} models.Agent
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /agents/me [get]
func (s *AgentService) GetAccount(w http.ResponseWriter, r *http.Request) {
	agentID, _ := r.Context().Value("agentID").(string)
	if agentID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var agent models.Agent
	err := s.db.QueryRowContext(r.Context(), `
		SELECT id, name, email, role, commission_rate, created_at, last_login
		FROM agents WHERE id = $1
	`, agentID).Scan(&agent.ID, &agent.Name, &agent.Email, &agent.Role,
		&agent.CommissionRate, &agent.CreatedAt, &agent.LastLogin)
	if err == sql.ErrNoRows {
		SendErrorResponse(w, "Operator not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		log.Printf("[AUTH] Failed to load operator %s: %v", agentID, err)
		SendErrorResponse(w, "Failed to load profile", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(agent)
}

// CreateAgent registers a new operator account
// @Summary Create operator
// @Description Register a new operator; admin only
// @Tags agents
// @Accept json
// @Produce json
// @Param request body createAgentRequest true "Operator data"
// @Success 201 {object} models.Agent
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /agents [post]
func (s *AgentService) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("[AUTH] Password hashing failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	role := req.Role
	if role == "" {
		role = "agent"
	}

	agent := models.Agent{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		Role:           role,
		CommissionRate: req.CommissionRate,
		CreatedAt:      time.Now(),
	}

	_, err = s.db.ExecContext(r.Context(), `
		INSERT INTO agents (id, name, email, role, commission_rate, password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, agent.ID, agent.Name, agent.Email, agent.Role, agent.CommissionRate,
		hashedPassword, agent.CreatedAt)
	if err != nil {
		log.Printf("[AUTH] Operator creation failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "Email Already Exists", http.StatusConflict, nil)
		return
	}

	log.Printf("[AUTH] Operator created - ID: %s, Email: %s", agent.ID, agent.Email)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(agent)
}

// ListAgents lists all operator accounts
// @Summary List operators
// @Description List operator accounts; admin only
// @Tags agents
// @Produce json
// @Success 200 {object} object{agents=[]models.Agent}
// @Failure 500 {object} ErrorResponse
// @Router /agents [get]
func (s *AgentService) ListAgents(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, name, email, role, commission_rate, created_at, last_login
		FROM agents ORDER BY created_at
	`)
	if err != nil {
		log.Printf("[AUTH] Failed to list operators: %v", err)
		SendErrorResponse(w, "Failed to fetch operators", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	agents := []models.Agent{}
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role,
			&a.CommissionRate, &a.CreatedAt, &a.LastLogin); err != nil {
			SendErrorResponse(w, "Failed to fetch operators", http.StatusInternalServerError, nil)
			return
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		SendErrorResponse(w, "Failed to fetch operators", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"agents": agents})
}

func generateJWT(agentID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"agent_id": agentID,
		"role":     role,
		"exp":      time.Now().Add(time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour).Unix(),
	})

	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, viper.GetInt("argon2.salt_length"))
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")))
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")))
	return string(hash) == string(computedHash)
}
