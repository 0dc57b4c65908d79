package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/falcomnl/api-controller/pkg/query"
	"github.com/falcomnl/api-controller/pkg/response"
	"github.com/falcomnl/api-controller/pkg/store"
	"github.com/falcomnl/api-controller/pkg/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// bodyField is the error bag key used for unreadable request bodies.
const bodyField = "body"

// Resource serves the CRUD operations of model T.
type Resource[T any] struct {
	opts Options
	db   *gorm.DB
	repo *store.Repository[T]
	gate *validation.Gate
	log  Logger
}

// New creates a resource for T on db.
func New[T any](db *gorm.DB, opts Options) (*Resource[T], error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	gate, err := validation.NewGate()
	if err != nil {
		return nil, err
	}

	return &Resource[T]{
		opts: opts,
		db:   db,
		repo: store.New[T](db),
		gate: gate,
		log:  opts.Logger,
	}, nil
}

// Name returns the resource name.
func (r *Resource[T]) Name() string {
	return r.opts.Name
}

// Gate returns the validation gate, to register custom rules.
func (r *Resource[T]) Gate() *validation.Gate {
	return r.gate
}

// Index lists records, paginated unless NoPagination is set.
func (r *Resource[T]) Index(c *gin.Context) {
	if !r.permit(c, OpIndex, AbilityViewAny) {
		return
	}

	b := r.builder(c, r.opts.ListFields).
		AllowedFilters(r.opts.AllowedFilters...).
		AllowedSorts(r.opts.AllowedSorts...).
		DefaultSort(r.opts.DefaultSort...)
	if err := b.Err(); err != nil {
		r.fail(c, OpIndex, err)
		return
	}

	if r.opts.NoPagination {
		records, err := b.Get(c.Request.Context())
		if err != nil {
			r.fail(c, OpIndex, err)
			return
		}
		r.respond(c, OpIndex, b, records, response.Object)
		return
	}

	page, err := b.Paginate(c.Request.Context(), r.perPage(b.Params()))
	if err != nil {
		r.fail(c, OpIndex, err)
		return
	}
	r.respond(c, OpIndex, b, page, response.Paginated)
}

// Show returns the addressed record.
func (r *Resource[T]) Show(c *gin.Context) {
	if !r.permit(c, OpShow, "") {
		return
	}

	record, b, ok := r.lookup(c, OpShow, AbilityView)
	if !ok {
		return
	}
	r.respond(c, OpShow, b, record, response.Object)
}

// Store validates the body and creates a record.
func (r *Resource[T]) Store(c *gin.Context) {
	if !r.permit(c, OpCreate, AbilityCreate) {
		return
	}

	body, ok := r.body(c, OpCreate)
	if !ok || !r.valid(c, OpCreate, body, false) {
		return
	}

	record := new(T)
	if !r.decode(c, OpCreate, body, record) {
		return
	}

	if err := r.repo.Create(c.Request.Context(), record); err != nil {
		r.fail(c, OpCreate, err)
		return
	}

	b := r.builder(c, nil)
	r.respond(c, OpCreate, b, record, response.Created)
}

// Update validates the body and saves the keys it contains on the addressed record.
func (r *Resource[T]) Update(c *gin.Context) {
	if !r.permit(c, OpUpdate, "") {
		return
	}

	record, b, ok := r.lookup(c, OpUpdate, AbilityUpdate)
	if !ok {
		return
	}

	body, ok := r.body(c, OpUpdate)
	if !ok || !r.valid(c, OpUpdate, body, true) {
		return
	}

	fields, err := store.FieldsForKeys[T](keys(body))
	if err != nil {
		r.fail(c, OpUpdate, err)
		return
	}

	if !r.decode(c, OpUpdate, body, record) {
		return
	}

	if err := r.repo.Update(c.Request.Context(), record, fields); err != nil {
		r.fail(c, OpUpdate, err)
		return
	}
	r.respond(c, OpUpdate, b, record, response.Updated)
}

// Destroy deletes the addressed record.
func (r *Resource[T]) Destroy(c *gin.Context) {
	if !r.permit(c, OpDelete, "") {
		return
	}

	record, _, ok := r.lookup(c, OpDelete, AbilityDelete)
	if !ok {
		return
	}

	if err := r.repo.Delete(c.Request.Context(), record); err != nil {
		r.fail(c, OpDelete, err)
		return
	}
	response.Deleted(c)
}

// OrderUp moves the addressed record one position up.
func (r *Resource[T]) OrderUp(c *gin.Context) {
	r.reorder(c, OpUp, r.repo.MoveOrderUp)
}

// OrderDown moves the addressed record one position down.
func (r *Resource[T]) OrderDown(c *gin.Context) {
	r.reorder(c, OpDown, r.repo.MoveOrderDown)
}

func (r *Resource[T]) reorder(c *gin.Context, op Operation, move func(context.Context, *T) error) {
	if !r.permit(c, op, "") {
		return
	}

	record, b, ok := r.lookup(c, op, AbilityReorder)
	if !ok {
		return
	}

	if err := move(c.Request.Context(), record); err != nil {
		r.fail(c, op, err)
		return
	}
	r.respond(c, op, b, record, response.Object)
}

// permit checks the allow-list and, when ability is set, authorizes the request.
func (r *Resource[T]) permit(c *gin.Context, op Operation, ability Ability) bool {
	if !isAllowed(r.opts.AllowedOperations, op) {
		response.NotImplemented(c)
		return false
	}
	if ability == "" {
		return true
	}
	return r.authorize(c, ability, nil)
}

func (r *Resource[T]) authorize(c *gin.Context, ability Ability, record interface{}) bool {
	if r.opts.Authorizer == nil {
		return true
	}
	if err := r.opts.Authorizer.Authorize(c, ability, record); err != nil {
		r.log.Info(fmt.Sprintf("%s: %s not authorized: %v", r.opts.Name, ability, err))
		response.Unauthorized(c)
		return false
	}
	return true
}

// builder configures a query with the allow-lists shared by every operation
// and the fixed constraints.
func (r *Resource[T]) builder(c *gin.Context, fields []string) *query.Builder[T] {
	b := query.For[T](r.db, query.ParseParams(c.Request.URL)).
		Select(fields...).
		AllowedFields(r.opts.AllowedFields...).
		AllowedIncludes(r.opts.AllowedIncludes...).
		AllowedAppends(r.opts.AllowedAppends...)

	for _, column := range sortedKeys(r.opts.Constraints) {
		b.Where(column, r.opts.Constraints[column])
	}
	for column, value := range r.paramConstraints(c) {
		b.Where(column, value)
	}
	return b
}

// lookup finds the record addressed by the last route parameter and
// authorizes ability on it.
func (r *Resource[T]) lookup(c *gin.Context, op Operation, ability Ability) (*T, *query.Builder[T], bool) {
	b := r.builder(c, r.opts.DetailFields)
	if err := b.Err(); err != nil {
		r.fail(c, op, err)
		return nil, nil, false
	}

	if len(c.Params) == 0 {
		response.NotFound(c)
		return nil, nil, false
	}
	key := c.Params[len(c.Params)-1].Value

	record, err := b.Where(r.opts.KeyColumn, r.coerce(r.opts.KeyColumn, key)).First(c.Request.Context())
	if err != nil {
		r.fail(c, op, err)
		return nil, nil, false
	}

	if !r.authorize(c, ability, record) {
		return nil, nil, false
	}
	return record, b, true
}

// body reads the JSON object of a write request and merges the constraints
// into it. A malformed body is answered with a validation error.
func (r *Resource[T]) body(c *gin.Context, op Operation) (map[string]interface{}, bool) {
	body := map[string]interface{}{}

	var raw []byte
	if c.Request.Body != nil {
		var err error
		if raw, err = io.ReadAll(c.Request.Body); err != nil {
			r.fail(c, op, fmt.Errorf("failed to read body: %w", err))
			return nil, false
		}
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := decodeObject(raw, &body); err != nil {
			response.ValidationError(c, response.ValidationErrors{
				bodyField: {"The request body must be a JSON object."},
			})
			return nil, false
		}
	}

	if err := store.StripPrimaryKeys[T](body); err != nil {
		r.fail(c, op, err)
		return nil, false
	}

	for column, value := range r.opts.Constraints {
		body[column] = value
	}
	for column, value := range r.paramConstraints(c) {
		body[column] = value
	}
	return body, true
}

func (r *Resource[T]) valid(c *gin.Context, op Operation, body map[string]interface{}, isUpdate bool) bool {
	errs, err := r.gate.Check(c.Request.Context(), body, r.opts.Validation, isUpdate)
	if err != nil {
		r.fail(c, op, err)
		return false
	}
	if len(errs) == 0 {
		return true
	}

	c.Set(validation.ErrorsKey, errs)
	response.ValidationError(c, response.ValidationErrors(errs))
	return false
}

func (r *Resource[T]) respond(c *gin.Context, op Operation, b *query.Builder[T], v interface{}, write func(*gin.Context, interface{})) {
	out, err := b.Present(v)
	if err != nil {
		r.fail(c, op, err)
		return
	}
	write(c, out)
}

// fail maps err to its envelope: invalid queries answer 500 with their
// message, missing records 404, anything else a logged 500.
func (r *Resource[T]) fail(c *gin.Context, op Operation, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidQuery):
		response.GeneralError(c, err.Error())
	case errors.Is(err, query.ErrNotFound):
		response.NotFound(c)
	default:
		r.log.Error(fmt.Sprintf("%s %s failed: %v", r.opts.Name, op, err))
		response.GeneralError(c, response.MessageServerError)
	}
}

func (r *Resource[T]) perPage(params query.Params) int {
	switch {
	case params.PerPage < 1:
		return r.opts.PerPage
	case params.PerPage > r.opts.MaxPerPage:
		return r.opts.MaxPerPage
	default:
		return params.PerPage
	}
}

func (r *Resource[T]) paramConstraints(c *gin.Context) map[string]interface{} {
	out := make(map[string]interface{}, len(r.opts.ParamConstraints))
	for param, column := range r.opts.ParamConstraints {
		out[column] = r.coerce(column, c.Param(param))
	}
	return out
}

// coerce converts a route parameter to the type of column so it can be
// decoded into T and compared in queries.
func (r *Resource[T]) coerce(column, raw string) interface{} {
	s, err := store.ParseModel(r.db, new(T))
	if err != nil {
		return raw
	}
	field := s.LookUpField(column)
	if field == nil {
		return raw
	}

	switch field.DataType {
	case schema.Int:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case schema.Uint:
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return n
		}
	case schema.Float:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case schema.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// decode overlays body onto record. Values of the wrong JSON type are
// answered with a validation error.
func (r *Resource[T]) decode(c *gin.Context, op Operation, body map[string]interface{}, record *T) bool {
	raw, err := json.Marshal(body)
	if err != nil {
		r.fail(c, op, fmt.Errorf("failed to encode body: %w", err))
		return false
	}

	err = json.Unmarshal(raw, record)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		response.ValidationError(c, response.ValidationErrors{
			typeErr.Field: {fmt.Sprintf("The %s field must be of type %s.", typeErr.Field, typeErr.Type)},
		})
		return false
	}

	r.fail(c, op, fmt.Errorf("failed to decode body: %w", err))
	return false
}

// decodeObject decodes a single JSON object into body. Numbers are kept as
// json.Number so 64-bit integers reach the record unchanged.
func decodeObject(raw []byte, body *map[string]interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err := dec.Decode(body); err != nil {
		return err
	}
	if *body == nil {
		return errors.New("body is null")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the body")
	}
	return nil
}

func keys(body map[string]interface{}) []string {
	out := make([]string, 0, len(body))
	for k := range body {
		out = append(out, k)
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	out := keys(m)
	sort.Strings(out)
	return out
}
