package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// registerRole is the role every storefront sign-up gets.
const registerRole = "CLIENTE"

var _ ports.AccountAPI = (*Client)(nil)

func (c *Client) Login(ctx context.Context, email, password string) (domain.Identity, domain.Credential, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return domain.Identity{}, "", err
	}
	if resp.Token == "" {
		return domain.Identity{}, "", fmt.Errorf("login: %w: empty token", domain.ErrInvalidCredentials)
	}
	return resp.User.toIdentity(), domain.Credential(resp.Token), nil
}

// Register creates a customer account and returns the new user id (may be
// empty when the backend omits it).
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	var resp registerResponse
	err := c.do(ctx, http.MethodPost, "/api/register", "", registerRequest{
		NombreUsuario:   in.Username,
		Email:           in.Email,
		Password:        in.Password,
		NombreCompleto:  in.FullName,
		Telefono:        in.Phone,
		FechaNacimiento: in.BirthDate,
		RolNombre:       registerRole,
	}, &resp)
	if err != nil {
		return "", err
	}
	return string(resp.Data.Usuario.ID), nil
}

func (c *Client) Logout(ctx context.Context, cred domain.Credential) error {
	return c.do(ctx, http.MethodPost, "/api/logout", cred, nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, cred domain.Credential, userID string, in ports.ProfileInput) (domain.Identity, error) {
	var resp updateProfileResponse
	err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(userID), cred, updateProfileRequest{
		NombreUsuario:   in.Username,
		Email:           in.Email,
		NombreCompleto:  in.FullName,
		Telefono:        optional(in.Phone),
		FechaNacimiento: optional(in.BirthDate),
		Imagen:          in.AvatarURL,
	}, &resp)
	if err != nil {
		return domain.Identity{}, err
	}
	return resp.user().toIdentity(), nil
}
