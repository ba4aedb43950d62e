package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/pkg/contentstore"
	"ai-docchat-be/pkg/events"
	"ai-docchat-be/pkg/extract"
	pktNats "ai-docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicDocumentIngested is the in-process topic the ingestion audit
// consumer subscribes to.
const TopicDocumentIngested = "DOCUMENT_INGESTED"

type IDocumentService interface {
	Upload(ctx context.Context, sessionID, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, sessionID string) (*dto.ListDocumentsResponse, error)
	Delete(ctx context.Context, sessionID, filename string) error
	ClearSession(ctx context.Context, sessionID string) error
	PurgeAllBlobs(ctx context.Context) error
}

type documentService struct {
	extractor      extract.Extractor
	blobStore      contentstore.Store
	referenceRepo  contract.ReferenceRepository
	pubSub         *gochannel.GoChannel
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	maxUploadBytes int
}

func NewDocumentService(
	extractor extract.Extractor,
	blobStore contentstore.Store,
	referenceRepo contract.ReferenceRepository,
	pubSub *gochannel.GoChannel,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	maxUploadBytes int,
) IDocumentService {
	return &documentService{
		extractor:      extractor,
		blobStore:      blobStore,
		referenceRepo:  referenceRepo,
		pubSub:         pubSub,
		eventPublisher: eventPublisher,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *documentService) Upload(ctx context.Context, sessionID, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	if s.maxUploadBytes > 0 && len(data) > s.maxUploadBytes {
		return nil, &extract.ExtractionError{
			Filename: filename,
			Reason:   fmt.Sprintf("file exceeds %d bytes", s.maxUploadBytes),
		}
	}

	text, err := s.extractor.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	hash, deduplicated, err := s.blobStore.Put(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.referenceRepo.AddReference(ctx, sessionID, filename, string(hash)); err != nil {
		return nil, err
	}

	s.log.Info("document_service", "document ingested", map[string]interface{}{
		"session_id":   sessionID,
		"filename":     filename,
		"content_hash": string(hash),
		"deduplicated": deduplicated,
	})

	s.publishIngested(ctx, sessionID, filename, string(hash), len(text), deduplicated)

	return &dto.UploadDocumentResponse{
		Filename:     filename,
		ContentHash:  string(hash),
		SizeBytes:    len(text),
		Deduplicated: deduplicated,
	}, nil
}

// publishIngested fans the ingestion out to the in-process audit consumer
// and to NATS. Delivery failures are logged, never surfaced to the caller.
func (s *documentService) publishIngested(ctx context.Context, sessionID, filename, hash string, sizeBytes int, deduplicated bool) {
	evt := events.NewDocumentIngested(sessionID, filename, hash, sizeBytes, deduplicated)

	if s.pubSub != nil {
		payload, err := json.Marshal(evt.Payload())
		if err == nil {
			msg := message.NewMessage(watermill.NewUUID(), payload)
			if err := s.pubSub.Publish(TopicDocumentIngested, msg); err != nil {
				s.log.Warn("document_service", "failed to publish audit message", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("document_service", "failed to publish DOCUMENT_INGESTED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (s *documentService) List(ctx context.Context, sessionID string) (*dto.ListDocumentsResponse, error) {
	refs, err := s.referenceRepo.Resolve(ctx, sessionID, nil)
	if err != nil {
		return nil, err
	}

	docs := make([]dto.DocumentInfo, 0, len(refs))
	for _, ref := range refs {
		docs = append(docs, dto.DocumentInfo{
			Filename:    ref.DisplayName,
			ContentHash: ref.ContentHash,
		})
	}
	return &dto.ListDocumentsResponse{Documents: docs}, nil
}

func (s *documentService) Delete(ctx context.Context, sessionID, filename string) error {
	// Drops the session's reference only. The blob stays: other sessions
	// may point at the same hash.
	return s.referenceRepo.RemoveReference(ctx, sessionID, filename)
}

func (s *documentService) ClearSession(ctx context.Context, sessionID string) error {
	if err := s.referenceRepo.Clear(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info("document_service", "session cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (s *documentService) PurgeAllBlobs(ctx context.Context) error {
	if err := s.blobStore.PurgeAll(ctx); err != nil {
		return err
	}
	s.log.Warn("document_service", "all blobs purged", nil)
	return nil
}
