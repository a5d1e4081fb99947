// Package client es un cliente tipado de la API de mascotas.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pet-registry/internal/platform/httpclient"
)

type Group struct {
	ID             string    `json:"id,omitempty"`
	ScientificName string    `json:"scientific_name"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
}

type Trait struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type Pet struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Sex    string  `json:"sex"`
	Group  Group   `json:"group"`
	Traits []Trait `json:"traits"`
}

type CreatePet struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Sex    string  `json:"sex,omitempty"`
	Group  Group   `json:"group"`
	Traits []Trait `json:"traits"`
}

// UpdatePet: solo se mandan los campos no nil.
type UpdatePet struct {
	Name   *string `json:"name,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Group  *Group  `json:"group,omitempty"`
	Traits []Trait `json:"traits,omitempty"`
}

type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Pet   `json:"results"`
}

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, tr http.RoundTripper) (*Client, error) {
	hc, err := httpclient.NewWithTransport(baseURL, 0, tr)
	if err != nil {
		return nil, err
	}
	hc.Headers["User-Agent"] = "pet-registry-client"
	return &Client{http: hc}, nil
}

func (c *Client) CreatePet(ctx context.Context, in CreatePet) (Pet, error) {
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodPost, "/pets", in, &out); err != nil {
		return Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return out, nil
}

func (c *Client) GetPet(ctx context.Context, id string) (Pet, error) {
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets/"+url.PathEscape(id), nil, &out); err != nil {
		return Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return out, nil
}

// ListPets pide una página (page >= 1). Requiere el server con paginación activa.
func (c *Client) ListPets(ctx context.Context, page int) (Page, error) {
	path := "/pets"
	if page > 1 {
		path += "?page=" + strconv.Itoa(page)
	}
	var out Page
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Page{}, fmt.Errorf("list pets: %w", err)
	}
	return out, nil
}

// ListAllPets es para el server sin paginación (lista plana).
func (c *Client) ListAllPets(ctx context.Context) ([]Pet, error) {
	var out []Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets", nil, &out); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return out, nil
}

func (c *Client) UpdatePet(ctx context.Context, id string, in UpdatePet) (Pet, error) {
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodPatch, "/pets/"+url.PathEscape(id), in, &out); err != nil {
		return Pet{}, fmt.Errorf("update pet: %w", err)
	}
	return out, nil
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	if err := c.http.DoJSON(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return nil
}

func IsNotFound(err error) bool {
	return httpclient.StatusCode(err) == http.StatusNotFound
}

func IsBadRequest(err error) bool {
	return httpclient.StatusCode(err) == http.StatusBadRequest
}
