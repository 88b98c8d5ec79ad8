package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ComandaApp/app/audio"
	"ComandaApp/app/metrics"
	"ComandaApp/app/models"

	"github.com/google/uuid"
)

// DictationService holds the voice-dictation recording sessions. Clips
// live only in memory for the duration of a session and are destroyed
// on delete or reset; nothing here is ever persisted.
type DictationService struct {
	mu       sync.Mutex
	backend  Backend
	sessions map[string][]models.Clip // newest clip first, recording order
}

// NewDictationService creates a dictation service.
func NewDictationService(backend Backend) *DictationService {
	return &DictationService{
		backend:  backend,
		sessions: make(map[string][]models.Clip),
	}
}

// AddClip stores a recorded segment at the head of the session's clip
// list (the recording UI shows newest first) and returns its ID.
func (s *DictationService) AddClip(sessionID, mime string, data []byte) (models.Clip, error) {
	if len(data) == 0 {
		return models.Clip{}, fmt.Errorf("empty clip")
	}

	clip := models.Clip{
		ID:        uuid.NewString(),
		MIME:      mime,
		Size:      len(data),
		CreatedAt: time.Now(),
		Data:      data,
	}

	if pcm, err := audio.DecodeWAV(data); err == nil {
		clip.Duration = time.Duration(pcm.Duration() * float64(time.Second))
	}

	s.mu.Lock()
	s.sessions[sessionID] = append([]models.Clip{clip}, s.sessions[sessionID]...)
	s.mu.Unlock()

	return clip, nil
}

// Clips lists a session's clips, newest first, without payloads.
func (s *DictationService) Clips(sessionID string) []models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()

	clips := s.sessions[sessionID]
	out := make([]models.Clip, len(clips))
	for i, c := range clips {
		c.Data = nil
		out[i] = c
	}
	return out
}

// DeleteClip removes one clip from a session.
func (s *DictationService) DeleteClip(sessionID, clipID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clips := s.sessions[sessionID]
	for i, c := range clips {
		if c.ID == clipID {
			s.sessions[sessionID] = append(clips[:i], clips[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("clip %s not found", clipID)
}

// Reset discards a session's clips.
func (s *DictationService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Upload merges a session's clips into one WAV and posts it to the
// transcription webhook, returning the transcribed text. Clips are
// stored newest first, so they are reversed back to chronological order
// before merging. On success only the uploaded clips are removed; a
// recording that finished while the upload was in flight stays in the
// session, and a failed upload keeps everything so the user can retry.
func (s *DictationService) Upload(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	clips := s.sessions[sessionID]
	s.mu.Unlock()

	ordered := make([][]byte, 0, len(clips))
	uploaded := make(map[string]bool, len(clips))
	for i := len(clips) - 1; i >= 0; i-- {
		ordered = append(ordered, clips[i].Data)
		uploaded[clips[i].ID] = true
	}

	wav, err := audio.MergeClips(ordered)
	if err != nil {
		metrics.DictationUploads.WithLabelValues("merge_error").Inc()
		return "", fmt.Errorf("error merging clips: %w", err)
	}

	filename := fmt.Sprintf("dictado-%s.wav", time.Now().Format("20060102-150405"))
	text, err := s.backend.UploadDictation(ctx, wav, filename)
	if err != nil {
		metrics.DictationUploads.WithLabelValues("upload_error").Inc()
		return "", fmt.Errorf("error uploading dictation: %w", err)
	}

	metrics.DictationUploads.WithLabelValues("ok").Inc()
	s.removeClips(sessionID, uploaded)
	return text, nil
}

// removeClips drops the given clips from a session, keeping any that
// were recorded after the snapshot was taken.
func (s *DictationService) removeClips(sessionID string, ids map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.sessions[sessionID][:0]
	for _, c := range s.sessions[sessionID] {
		if !ids[c.ID] {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(s.sessions, sessionID)
		return
	}
	s.sessions[sessionID] = remaining
}
