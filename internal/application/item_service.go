package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/domain/repository"
	"github.com/Ping-Win-Info/insavente/internal/listing"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// ItemService owns the item lifecycle and the listing engine entry point.
// Mutations pass through the authorization evaluator before any write.
type ItemService struct {
	Repo         repository.ItemRepository
	Logger       *logrus.Logger
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESItemsIndex string
	MaxPageSize  int
}

func NewItemService(repo repository.ItemRepository, logger *logrus.Logger, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esItemsIndex string, maxPageSize int) *ItemService {
	return &ItemService{
		Repo:         repo,
		Logger:       logger,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESItemsIndex: esItemsIndex,
		MaxPageSize:  maxPageSize,
	}
}

type CreateItemInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Location    string
	Images      []string
}

func (s *ItemService) Create(ctx context.Context, sellerID string, in CreateItemInput) (*entity.Item, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, ErrBadCategory
	}
	it := &entity.Item{
		SellerID:    sellerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Location:    in.Location,
		Images:      in.Images,
	}
	if it.Images == nil {
		it.Images = []string{}
	}
	if err := s.Repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.indexItem(ctx, it)
	return it, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	it, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

// List runs the public listing engine: validate the raw parameters into a
// Spec, then execute it. Identity plays no part in read paths.
func (s *ItemService) List(ctx context.Context, raw listing.RawParams) (*listing.Page, error) {
	spec, err := listing.Parse(raw, s.MaxPageSize)
	if err != nil {
		return nil, err
	}
	items, total, err := s.Repo.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &listing.Page{
		Items:      items,
		TotalItems: total,
		TotalPages: listing.TotalPages(total, spec.PageSize),
		Page:       spec.Page,
		PageSize:   spec.PageSize,
	}, nil
}

type UpdateItemInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Location    *string
	Images      []string
	IsActive    *bool
}

// Update mutates an item after the ownership gate. Nil fields are left
// untouched.
func (s *ItemService) Update(ctx context.Context, id *authz.Identity, itemID string, in UpdateItemInput) (*entity.Item, error) {
	it, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if d := authz.OwnerOrAdmin(id, it.SellerID); !d.Allowed {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Price != nil {
		it.Price = *in.Price
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, ErrBadCategory
		}
		it.Category = *in.Category
	}
	if in.Location != nil {
		it.Location = *in.Location
	}
	if in.Images != nil {
		it.Images = in.Images
	}
	if in.IsActive != nil {
		it.IsActive = *in.IsActive
	}

	if err := s.Repo.Update(ctx, it); err != nil {
		return nil, err
	}
	s.indexItem(ctx, it)
	return it, nil
}

// Delete removes an item after the ownership gate.
func (s *ItemService) Delete(ctx context.Context, id *authz.Identity, itemID string) error {
	it, err := s.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if d := authz.OwnerOrAdmin(id, it.SellerID); !d.Allowed {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.deleteIndexed(ctx, itemID)
	return nil
}

// UploadImage stores an image in GCS and appends its public URL to the item.
func (s *ItemService) UploadImage(ctx context.Context, id *authz.Identity, itemID string, r io.Reader, filename, contentType string) (*entity.Item, error) {
	it, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if d := authz.OwnerOrAdmin(id, it.SellerID); !d.Allowed {
		return nil, ErrForbidden
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("items", itemID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	it.Images = append(it.Images, url)
	if err := s.Repo.Update(ctx, it); err != nil {
		return nil, err
	}
	s.indexItem(ctx, it)
	return it, nil
}

// indexItem mirrors the item into Elasticsearch for the relevance search
// endpoint. Best effort: failures are logged and never block the write path.
func (s *ItemService) indexItem(ctx context.Context, it *entity.Item) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          it.ID,
		"title":       it.Title,
		"description": it.Description,
		"price":       it.Price,
		"category":    it.Category,
		"location":    it.Location,
		"is_active":   it.IsActive,
		"created_at":  it.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESItemsIndex, DocumentID: it.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("item_id", it.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("item_id", it.ID).Warn("es index response error")
	}
}

func (s *ItemService) deleteIndexed(ctx context.Context, itemID string) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESItemsIndex, DocumentID: itemID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("item_id", itemID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a relevance-ranked multi_match over title and description.
// This is a convenience surface, deliberately separate from the deterministic
// listing engine.
func (s *ItemService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_active": true},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESItemsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
