package welfareapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pet-welfare-dashboard/internal/domain/animals"
	"pet-welfare-dashboard/internal/platform/httpclient"
	"pet-welfare-dashboard/internal/query"
)

// Gateway es lo único que el cliente necesita de httpclient.Client.
type Gateway interface {
	Request(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// Client expone un método tipado por endpoint del backend remoto.
type Client struct {
	gw Gateway
}

func NewClient(gw Gateway) *Client {
	return &Client{gw: gw}
}

func (c *Client) Animals(ctx context.Context) ([]animals.AnimalRecord, error) {
	var out []animals.AnimalRecord
	err := c.get(ctx, query.MustBuild(query.Animals, nil), &out)
	return out, err
}

func (c *Client) SpeciesCounts(ctx context.Context) ([]animals.SpeciesCountRow, error) {
	var out []animals.SpeciesCountRow
	err := c.get(ctx, query.MustBuild(query.SpeciesCounts, nil), &out)
	return out, err
}

// WelfareFollowUps: species "All" o "" => sin filtro.
func (c *Client) WelfareFollowUps(ctx context.Context, species string) ([]animals.WelfareFollowUpRow, error) {
	path, err := query.Build(query.WelfareFollowUps, query.P("species", species))
	if err != nil {
		return nil, err
	}
	var out []animals.WelfareFollowUpRow
	err = c.get(ctx, path, &out)
	return out, err
}

// AdoptionStats: state "All" o "" => sin filtro.
func (c *Client) AdoptionStats(ctx context.Context, state string) ([]animals.AdoptionStatRow, error) {
	path, err := query.Build(query.AdoptionStats, query.P("state", state))
	if err != nil {
		return nil, err
	}
	var out []animals.AdoptionStatRow
	err = c.get(ctx, path, &out)
	return out, err
}

// AddAnimal: el body de respuesta no se consume (solo tiene que ser JSON).
func (c *Client) AddAnimal(ctx context.Context, rec animals.AnimalRecord) error {
	_, err := c.gw.Request(ctx, http.MethodPost, "/add-animal", rec)
	return err
}

func (c *Client) DeleteAnimal(ctx context.Context, id int) error {
	_, err := c.gw.Request(ctx, http.MethodDelete, fmt.Sprintf("/delete-animal/%d", id), nil)
	return err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.gw.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &httpclient.DecodeError{Err: err}
	}
	return nil
}
