package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/renova/storefront/internal/core/domain"
)

// flexNumber accepts 12.5, "12.50" and null.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("flexNumber: %w", err)
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

// flexString accepts "abc", 12345678 and null.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}

type imageDTO struct {
	URL string `json:"url"`
}

type productSnapshotDTO struct {
	Titulo   string     `json:"titulo"`
	Stock    int        `json:"stock"`
	Imagenes []imageDTO `json:"imagenes"`
}

type cartItemDTO struct {
	ProductoID     flexString         `json:"productoId"`
	PrecioUnitario flexNumber         `json:"precioUnitario"`
	Cantidad       int                `json:"cantidad"`
	Producto       productSnapshotDTO `json:"producto"`
}

type cartEnvelope struct {
	Data *struct {
		Items []cartItemDTO `json:"items"`
	} `json:"data"`
}

func (d cartItemDTO) toLineItem() domain.LineItem {
	image := ""
	if len(d.Producto.Imagenes) > 0 {
		image = d.Producto.Imagenes[0].URL
	}
	return domain.LineItem{
		ProductID:   string(d.ProductoID),
		Name:        d.Producto.Titulo,
		Price:       float64(d.PrecioUnitario),
		Quantity:    d.Cantidad,
		MaxQuantity: d.Producto.Stock,
		Image:       image,
	}
}

type addCartItemRequest struct {
	ProductoID string `json:"productoId"`
	Cantidad   int    `json:"cantidad"`
}

type personaDTO struct {
	ID              string     `json:"id"`
	NombreCompleto  string     `json:"nombreCompleto"`
	Telefono        flexString `json:"telefono"`
	FechaNacimiento *string    `json:"fechaNacimiento"`
}

type userDTO struct {
	ID            flexString  `json:"id"`
	NombreUsuario string      `json:"nombreUsuario"`
	Email         string      `json:"email"`
	Roles         []string    `json:"roles"`
	Persona       *personaDTO `json:"persona"`
	FechaRegistro *string     `json:"fechaRegistro"`
	Imagen        *string     `json:"imagen"`
}

func (u userDTO) toIdentity() domain.Identity {
	id := domain.Identity{
		ID:       string(u.ID),
		Username: u.NombreUsuario,
		Email:    u.Email,
		Roles:    domain.NormalizeRoles(u.Roles),
	}
	if u.Persona != nil {
		id.FullName = u.Persona.NombreCompleto
		id.Phone = string(u.Persona.Telefono)
		if u.Persona.FechaNacimiento != nil {
			id.BirthDate = *u.Persona.FechaNacimiento
		}
	}
	if u.FechaRegistro != nil {
		id.RegisteredAt = *u.FechaRegistro
	}
	if u.Imagen != nil {
		id.AvatarURL = strings.TrimSpace(*u.Imagen)
	}
	return id
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type registerRequest struct {
	NombreUsuario   string `json:"nombreUsuario"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	NombreCompleto  string `json:"nombreCompleto"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fechaNacimiento"`
	RolNombre       string `json:"rolNombre"`
}

type registerResponse struct {
	Data struct {
		Usuario struct {
			ID flexString `json:"id"`
		} `json:"usuario"`
	} `json:"data"`
}

type updateProfileRequest struct {
	NombreUsuario   string  `json:"nombreUsuario"`
	Email           string  `json:"email"`
	NombreCompleto  string  `json:"nombreCompleto"`
	Telefono        *string `json:"telefono"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Imagen          string  `json:"imagen,omitempty"`
}

// updateProfileResponse accepts both {data:{usuario:{...}}} and a bare user.
type updateProfileResponse struct {
	userDTO
	Data *struct {
		Usuario *userDTO `json:"usuario"`
	} `json:"data"`
}

func (r updateProfileResponse) user() userDTO {
	if r.Data != nil && r.Data.Usuario != nil {
		return *r.Data.Usuario
	}
	return r.userDTO
}

// orderResponse accepts both {data:{id}} and {id}.
type orderResponse struct {
	ID   flexString `json:"id"`
	Data *struct {
		ID flexString `json:"id"`
	} `json:"data"`
}

func (r orderResponse) orderID() string {
	if r.Data != nil && r.Data.ID != "" {
		return string(r.Data.ID)
	}
	return string(r.ID)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
