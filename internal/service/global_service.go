package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/unitofwork"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/tidwall/gjson"
)

// documentSearchDepth bounds how far into a global's data documents are looked for.
const documentSearchDepth = 8

type IGlobalService interface {
	// Get returns the global with every embedded rich-text document rendered.
	Get(ctx context.Context, key, format string) (*dto.GlobalResponse, error)
	Put(ctx context.Context, req *dto.PutGlobalRequest) (*dto.GlobalResponse, error)
	// Patch applies an RFC 7386 merge patch. A missing global patches an empty object.
	Patch(ctx context.Context, req *dto.PatchGlobalRequest) (*dto.GlobalResponse, error)
}

type globalService struct {
	uowFactory       unitofwork.RepositoryFactory
	renderService    IRenderService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewGlobalService(
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	publisherService IPublisherService,
	log logger.ILogger,
) IGlobalService {
	return &globalService{
		uowFactory:       uowFactory,
		renderService:    renderService,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *globalService) Get(ctx context.Context, key, format string) (*dto.GlobalResponse, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	global, err := uow.GlobalRepository().FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if global == nil {
		return nil, ErrNotFound
	}

	var data map[string]interface{}
	if err := json.Unmarshal(global.Data, &data); err != nil {
		return nil, err
	}

	for k, v := range data {
		rendered, err := s.renderValue(ctx, v, f, 1)
		if err != nil {
			return nil, err
		}
		data[k] = rendered
	}

	return &dto.GlobalResponse{Key: global.Key, Data: data, UpdatedAt: global.UpdatedAt}, nil
}

// renderValue replaces documents inside v with their rendered form. A document
// is an object with a "root" object, or a string holding one.
func (s *globalService) renderValue(ctx context.Context, v interface{}, f entity.RenderFormat, depth int) (interface{}, error) {
	if depth > documentSearchDepth {
		return v, nil
	}

	switch val := v.(type) {
	case string:
		if isDocument([]byte(val)) {
			return s.renderService.Render(ctx, json.RawMessage(val), f)
		}
	case map[string]interface{}:
		if _, ok := val["root"].(map[string]interface{}); ok {
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			return s.renderService.Render(ctx, raw, f)
		}
		for k, child := range val {
			rendered, err := s.renderValue(ctx, child, f, depth+1)
			if err != nil {
				return nil, err
			}
			val[k] = rendered
		}
	case []interface{}:
		for i, child := range val {
			rendered, err := s.renderValue(ctx, child, f, depth+1)
			if err != nil {
				return nil, err
			}
			val[i] = rendered
		}
	}
	return v, nil
}

func isDocument(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && gjson.ValidBytes(trimmed) && gjson.GetBytes(trimmed, "root").IsObject()
}

// globalDocuments lists the documents inside a global's data in the byte form
// Get renders them from, so warming hits the same cache keys.
func globalDocuments(data []byte) []json.RawMessage {
	var out []json.RawMessage
	var walk func(r gjson.Result, depth int)
	walk = func(r gjson.Result, depth int) {
		if depth > documentSearchDepth {
			return
		}
		switch {
		case r.Type == gjson.String:
			if isDocument([]byte(r.Str)) {
				out = append(out, json.RawMessage(r.Str))
			}
		case r.IsObject() && depth > 0 && r.Get("root").IsObject():
			var v map[string]interface{}
			if err := json.Unmarshal([]byte(r.Raw), &v); err == nil {
				if raw, err := json.Marshal(v); err == nil {
					out = append(out, raw)
				}
			}
		case r.IsObject() || r.IsArray():
			r.ForEach(func(_, child gjson.Result) bool {
				walk(child, depth+1)
				return true
			})
		}
	}
	walk(gjson.ParseBytes(data), 0)
	return out
}

func (s *globalService) Put(ctx context.Context, req *dto.PutGlobalRequest) (*dto.GlobalResponse, error) {
	if !isObject(req.Data) {
		return nil, ErrInvalidDocument
	}
	return s.save(ctx, req.Key, req.Data)
}

func (s *globalService) Patch(ctx context.Context, req *dto.PatchGlobalRequest) (*dto.GlobalResponse, error) {
	if !isObject(req.Patch) {
		return nil, ErrInvalidPatch
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	global, err := uow.GlobalRepository().FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	original := []byte("{}")
	if global != nil {
		original = global.Data
	}

	merged, err := jsonpatch.MergePatch(original, req.Patch)
	if err != nil {
		return nil, ErrInvalidPatch
	}
	return s.save(ctx, req.Key, merged)
}

func (s *globalService) save(ctx context.Context, key string, data []byte) (*dto.GlobalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.GlobalRepository()

	previous, err := repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	global := &entity.Global{Key: key, Data: json.RawMessage(data), UpdatedAt: &now}
	if err := repo.Save(ctx, global); err != nil {
		return nil, err
	}

	details := map[string]interface{}{"key": key}
	if previous != nil {
		if change, err := jsonpatch.CreateMergePatch(previous.Data, data); err == nil {
			details["change"] = string(change)
		}
	}
	s.logger.Info("GLOBAL", "Global saved", details)

	requestWarmup(ctx, s.publisherService, s.logger, WarmupKindGlobal, key)

	var out map[string]interface{}
	if err := json.Unmarshal(global.Data, &out); err != nil {
		return nil, err
	}
	return &dto.GlobalResponse{Key: global.Key, Data: out, UpdatedAt: global.UpdatedAt}, nil
}

func isObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
