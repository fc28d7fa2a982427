package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain"
	"github.com/invorya/stock-recon/internal/domain/entity"
	"github.com/invorya/stock-recon/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	store  docstore.Store
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store docstore.Store, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{store: store, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if role != entity.RoleAdmin && role != entity.RoleBodeguero && role != entity.RoleVendedor {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.store.Query(ctx, docstore.CollectionUsers, docstore.Filter{"email": in.Email})
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.store.Put(ctx, docstore.CollectionUsers, user.ID, userDoc(user)); err != nil {
		return nil, fmt.Errorf("put user: %w", err)
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecta responden igual: ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	docs, err := uc.store.Query(ctx, docstore.CollectionUsers, docstore.Filter{"email": in.Email})
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrUnauthorized
	}
	user := userFromDoc(docs[0])
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(&user),
	}, nil
}

func userDoc(u *entity.User) docstore.Doc {
	return docstore.Doc{
		"id":           u.ID,
		"email":        u.Email,
		"passwordHash": u.PasswordHash,
		"name":         u.Name,
		"role":         u.Role,
		"createdAt":    u.CreatedAt.Format(time.RFC3339),
		"updatedAt":    u.UpdatedAt.Format(time.RFC3339),
	}
}

func userFromDoc(doc docstore.Doc) entity.User {
	asString := func(key string) string {
		s, _ := doc[key].(string)
		return s
	}
	createdAt, _ := time.Parse(time.RFC3339, asString("createdAt"))
	updatedAt, _ := time.Parse(time.RFC3339, asString("updatedAt"))
	return entity.User{
		ID:           asString("id"),
		Email:        asString("email"),
		PasswordHash: asString("passwordHash"),
		Name:         asString("name"),
		Role:         asString("role"),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
