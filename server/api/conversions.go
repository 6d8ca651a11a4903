package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/dekarrin/rg2nfa/server/result"
	"github.com/dekarrin/rg2nfa/server/serr"
)

// HTTPCreateConversion returns a HandlerFunc that converts the grammar in the
// request and stores the result.
func (api API) HTTPCreateConversion() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateConversion)
}

// POST /conversions: convert a grammar.
func (api API) epCreateConversion(req *http.Request) result.Result {
	var create ConversionRequest
	err := parseJSON(req, &create)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if create.Grammar == "" {
		return result.BadRequest("grammar: property is empty or missing from request", "empty grammar")
	}

	conv, err := api.Backend.CreateConversion(req.Context(), create.Name, create.Grammar)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), "conversion failed: %s", err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(modelOf(conv), "created conversion %s (%s)", conv.ID, conv.Linearity)
}

// HTTPGetAllConversions returns a HandlerFunc that retrieves all stored
// conversions.
func (api API) HTTPGetAllConversions() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllConversions)
}

// GET /conversions: get all conversions, oldest first.
func (api API) epGetAllConversions(req *http.Request) result.Result {
	convs, err := api.Backend.GetAllConversions(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]ConversionModel, len(convs))
	for i := range convs {
		resp[i] = modelOf(convs[i])
	}

	return result.OK(resp, "got all %d conversions", len(resp))
}

// HTTPGetConversion returns a HandlerFunc that gets a single conversion by its
// ID.
func (api API) HTTPGetConversion() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetConversion)
}

func (api API) epGetConversion(req *http.Request) result.Result {
	id := requireIDParam(req)

	conv, err := api.Backend.GetConversion(req.Context(), id.String())
	if err != nil {
		return errResult(err, id.String())
	}

	return result.OK(modelOf(conv), "got conversion %s", id)
}

// HTTPDeleteConversion returns a HandlerFunc that deletes a conversion.
func (api API) HTTPDeleteConversion() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteConversion)
}

func (api API) epDeleteConversion(req *http.Request) result.Result {
	id := requireIDParam(req)

	conv, err := api.Backend.DeleteConversion(req.Context(), id.String())
	if err != nil {
		return errResult(err, id.String())
	}

	return result.OK(modelOf(conv), "deleted conversion %s", id)
}

// HTTPGetConversionTable returns a HandlerFunc that gets the transition table
// of a conversion as delimited text.
func (api API) HTTPGetConversionTable() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetConversionTable)
}

func (api API) epGetConversionTable(req *http.Request) result.Result {
	id := requireIDParam(req)

	conv, err := api.Backend.GetConversion(req.Context(), id.String())
	if err != nil {
		return errResult(err, id.String())
	}

	data, err := api.Backend.TableText(conv)
	if err != nil {
		return result.InternalServerError("conversion %s: %s", id, err.Error())
	}

	return result.Content(http.StatusOK, "text/csv; charset=utf-8", data, "got table of conversion %s", id)
}

func errResult(err error, id string) result.Result {
	if errors.Is(err, serr.ErrNotFound) {
		return result.NotFound("conversion %s: not found", id)
	} else if errors.Is(err, serr.ErrBadArgument) {
		return result.BadRequest(err.Error(), err.Error())
	}
	return result.InternalServerError(err.Error())
}

func modelOf(conv dao.Conversion) ConversionModel {
	t := conv.Table

	m := ConversionModel{
		URI:       PathPrefix + "/conversions/" + conv.ID.String(),
		ID:        conv.ID.String(),
		Name:      conv.Name,
		Grammar:   conv.Grammar,
		Linearity: conv.Linearity,
		Dropped:   conv.Dropped,
		Created:   conv.Created.Format(time.RFC3339),
		Table: TableModel{
			Orientation: t.Orientation.String(),
			States:      t.States,
			Accepting:   t.AcceptingStates(),
			Symbols:     t.Symbols,
			Cells:       make([][][]string, len(t.Cells)),
		},
	}

	// empty cells are sent as [] rather than null
	for row := range t.Cells {
		m.Table.Cells[row] = make([][]string, len(t.Cells[row]))
		for col := range t.Cells[row] {
			cell := t.Cells[row][col]
			if cell == nil {
				cell = []string{}
			}
			m.Table.Cells[row][col] = cell
		}
	}

	return m
}
