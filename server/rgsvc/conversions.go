package rgsvc

import (
	"context"
	"errors"

	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/dekarrin/rg2nfa/server/serr"
	"github.com/google/uuid"
)

// CreateConversion converts the grammar in src and stores the result under the
// given name. Returns the newly-created conversion as it exists after
// creation.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the grammar could not be
// converted, it will match serr.ErrConversion and serr.ErrBadArgument along
// with the rgerr sentinel that caused it. If the error occurred due to an
// unexpected problem with the DB, it will match serr.ErrDB.
func (svc Service) CreateConversion(ctx context.Context, name, src string) (dao.Conversion, error) {
	if src == "" {
		return dao.Conversion{}, serr.New("grammar cannot be blank", serr.ErrBadArgument)
	}

	res, err := svc.Converter.ConvertString(src)
	if err != nil {
		return dao.Conversion{}, serr.New("", err, serr.ErrConversion, serr.ErrBadArgument)
	}

	conv := dao.Conversion{
		Name:      name,
		Grammar:   src,
		Linearity: res.Grammar.Linearity().String(),
		Table:     res.Table,
	}
	for _, d := range res.Dropped {
		conv.Dropped = append(conv.Dropped, d.String())
	}

	conv, err = svc.DB.Conversions().Create(ctx, conv)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Conversion{}, serr.New("a conversion with that ID already exists", serr.ErrAlreadyExists)
		}
		return dao.Conversion{}, serr.WrapDB("could not create conversion", err)
	}

	return conv, nil
}

// GetAllConversions returns all stored conversions, oldest first.
func (svc Service) GetAllConversions(ctx context.Context) ([]dao.Conversion, error) {
	convs, err := svc.DB.Conversions().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}

	return convs, nil
}

// GetConversion returns the conversion with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no conversion with that ID
// exists, it will match serr.ErrNotFound. If the error occurred due to an
// unexpected problem with the DB, it will match serr.ErrDB. Finally, if the ID
// is not valid, it will match serr.ErrBadArgument.
func (svc Service) GetConversion(ctx context.Context, id string) (dao.Conversion, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Conversion{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	conv, err := svc.DB.Conversions().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Conversion{}, serr.ErrNotFound
		}
		return dao.Conversion{}, serr.WrapDB("could not get conversion", err)
	}

	return conv, nil
}

// DeleteConversion deletes the conversion with the given ID. It returns the
// deleted conversion just after it was deleted.
//
// The returned error, if non-nil, will match the same errors as GetConversion.
func (svc Service) DeleteConversion(ctx context.Context, id string) (dao.Conversion, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Conversion{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	conv, err := svc.DB.Conversions().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Conversion{}, serr.ErrNotFound
		}
		return dao.Conversion{}, serr.WrapDB("could not delete conversion", err)
	}

	return conv, nil
}

// TableText returns the transition table of conv in the output format the
// service's Converter writes.
func (svc Service) TableText(conv dao.Conversion) ([]byte, error) {
	data, err := svc.Converter.MarshalTable(conv.Table)
	if err != nil {
		return nil, serr.New("could not write table", err)
	}
	return data, nil
}
