package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	storespkg "github.com/rkartside/quoter-backend/internal/stores"
	pkgAuth "github.com/rkartside/quoter-backend/pkg/auth"
	"github.com/rkartside/quoter-backend/pkg/auth/session"
	"github.com/rkartside/quoter-backend/pkg/config"
	"github.com/rkartside/quoter-backend/pkg/db"
	"github.com/rkartside/quoter-backend/pkg/db/models"
	"github.com/rkartside/quoter-backend/pkg/enums"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
)

// SwitchStoreInput captures the data required to switch the active store.
type SwitchStoreInput struct {
	UserID        uuid.UUID
	Role          enums.MemberRole
	StoreID       uuid.UUID
	AccessTokenID string
	RefreshToken  string
}

// SwitchStoreResult returns the tokens issued after switching stores.
type SwitchStoreResult struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	Store        *storespkg.StoreDTO `json:"store"`
}

type switchStoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type switchSessionRotator interface {
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
}

// SwitchStoreService is the interface exposed to the controller.
type SwitchStoreService interface {
	Switch(ctx context.Context, input SwitchStoreInput) (*SwitchStoreResult, error)
}

type switchStoreService struct {
	stores  switchStoreRepository
	session switchSessionRotator
	jwtCfg  config.JWTConfig
}

// SwitchStoreServiceParams bundles dependencies for the switch flow.
type SwitchStoreServiceParams struct {
	StoreRepo      switchStoreRepository
	SessionManager switchSessionRotator
	JWTConfig      config.JWTConfig
}

// NewSwitchStoreService constructs the service.
func NewSwitchStoreService(params SwitchStoreServiceParams) (SwitchStoreService, error) {
	if params.StoreRepo == nil {
		return nil, errors.New("store repository required")
	}
	if params.SessionManager == nil {
		return nil, errors.New("session manager required")
	}
	return &switchStoreService{
		stores:  params.StoreRepo,
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
	}, nil
}

func (s *switchStoreService) Switch(ctx context.Context, input SwitchStoreInput) (*SwitchStoreResult, error) {
	// Only admins hop between stores. Store users are bound to their own.
	if input.Role != enums.MemberRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	store, err := s.stores.FindByID(ctx, input.StoreID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup store")
	}

	newAccessID, newRefreshToken, err := s.session.Rotate(ctx, input.AccessTokenID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:        input.UserID,
		ActiveStoreID: &store.ID,
		Role:          enums.MemberRoleAdmin,
		JTI:           newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &SwitchStoreResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Store:        storespkg.FromModel(store),
	}, nil
}
