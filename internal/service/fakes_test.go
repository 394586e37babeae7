package service

import (
	"context"
	"errors"
	"sync"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/specification"
	"rag-assistant-be/internal/repository/unitofwork"
	"rag-assistant-be/pkg/events"
)

// In-memory repository fakes sharing one store, so the unit of work can
// hand out repositories the way the real factory does.

type fakeStore struct {
	mu sync.Mutex

	documents     map[int64]*entity.Document
	chunks        map[int64]*entity.DocumentChunk
	conversations map[string]*entity.Conversation
	messages      []*entity.Message

	nextDocumentID     int64
	nextChunkID        int64
	nextConversationID int64
	nextMessageID      int64

	createDocumentErr error
	createChunksErr   error
	createMessageErr  error

	began      int
	committed  int
	rolledBack int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		documents:     make(map[int64]*entity.Document),
		chunks:        make(map[int64]*entity.DocumentChunk),
		conversations: make(map[string]*entity.Conversation),
	}
}

type fakeDocumentRepo struct{ store *fakeStore }

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createDocumentErr != nil {
		return r.store.createDocumentErr
	}
	r.store.nextDocumentID++
	document.Id = r.store.nextDocumentID
	r.store.documents[document.Id] = document
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.documents, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.store.documents[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Document, 0, len(r.store.documents))
	for _, d := range r.store.documents {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.documents)), nil
}

type fakeChunkRepo struct{ store *fakeStore }

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createChunksErr != nil {
		return r.store.createChunksErr
	}
	for _, c := range chunks {
		r.store.nextChunkID++
		c.Id = r.store.nextChunkID
		r.store.chunks[c.Id] = c
	}
	return nil
}

func (r *fakeChunkRepo) DeleteByDocumentID(ctx context.Context, documentID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, c := range r.store.chunks {
		if c.DocumentId == documentID {
			delete(r.store.chunks, id)
		}
	}
	return nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.DocumentChunk, 0, len(r.store.chunks))
	for _, c := range r.store.chunks {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if byDoc, ok := spec.(specification.ByDocumentID); ok {
			var n int64
			for _, c := range r.store.chunks {
				if c.DocumentId == byDoc.DocumentID {
					n++
				}
			}
			return n, nil
		}
	}
	return int64(len(r.store.chunks)), nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredChunk, error) {
	return nil, nil
}

type fakeConversationRepo struct{ store *fakeStore }

func (r *fakeConversationRepo) GetOrCreate(ctx context.Context, sessionID string) (*entity.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if conv, ok := r.store.conversations[sessionID]; ok {
		return conv, nil
	}
	r.store.nextConversationID++
	conv := &entity.Conversation{Id: r.store.nextConversationID, SessionId: sessionID}
	r.store.conversations[sessionID] = conv
	return conv, nil
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if bySession, ok := spec.(specification.BySessionID); ok {
			return r.store.conversations[bySession.SessionID], nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.conversations)), nil
}

type fakeMessageRepo struct{ store *fakeStore }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.createMessageErr != nil {
		return r.store.createMessageErr
	}
	found := false
	for _, conv := range r.store.conversations {
		if conv.Id == message.ConversationId {
			found = true
			break
		}
	}
	if !found {
		return contract.ErrConversationNotFound
	}
	r.store.nextMessageID++
	message.Id = r.store.nextMessageID
	r.store.messages = append(r.store.messages, message)
	return nil
}

func (r *fakeMessageRepo) Recent(ctx context.Context, conversationID int64, limit int) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.Message
	for _, m := range r.store.messages {
		if m.ConversationId == conversationID {
			all = append(all, m)
		}
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if byConv, ok := spec.(specification.ByConversationID); ok {
			var out []*entity.Message
			for _, m := range r.store.messages {
				if m.ConversationId == byConv.ConversationID {
					out = append(out, m)
				}
			}
			return out, nil
		}
	}
	return append([]*entity.Message{}, r.store.messages...), nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.messages)), nil
}

type fakeUnitOfWork struct {
	store *fakeStore
	began bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.began {
		return errors.New("transaction already started")
	}
	u.began = true
	u.store.began++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.began {
		return errors.New("no transaction to commit")
	}
	u.began = false
	u.store.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.began {
		return errors.New("no transaction to rollback")
	}
	u.began = false
	u.store.rolledBack++
	return nil
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChunkRepository() contract.ChunkRepository {
	return &fakeChunkRepo{store: u.store}
}

func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return &fakeConversationRepo{store: u.store}
}

func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{store: u.store}
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, evt events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

// fakeEmbedder returns fixed-size vectors and counts batch calls.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	texts [][]string
	err   error
}

func (f *fakeEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.texts = append(f.texts, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) EncodeOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
