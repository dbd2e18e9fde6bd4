package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"mcqgen/internal/adapter"
	"mcqgen/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func textKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "mcqgen:extract:text:" + hex.EncodeToString(sum[:]) + ":text"
}

func TestCachedExtractor_Hit(t *testing.T) {
	data := []byte("cached document")
	db, redisMock := redismock.NewClientMock()
	next := new(MockExtractor)
	extractor, err := NewCachedExtractor(next, adapter.NewRedisCacheAdapter(db), 0, 0)
	require.NoError(t, err)

	redisMock.ExpectGet(textKey(data)).SetVal("cached document")

	text, err := extractor.Extract(context.Background(), upload("notes.txt", data))
	require.NoError(t, err)
	assert.Equal(t, "cached document", text)
	next.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedExtractor_MissStoresText(t *testing.T) {
	data := []byte("fresh document")
	db, redisMock := redismock.NewClientMock()
	next := new(MockExtractor)
	extractor, err := NewCachedExtractor(next, adapter.NewRedisCacheAdapter(db), DefaultTextTTL, 0)
	require.NoError(t, err)

	redisMock.ExpectGet(textKey(data)).SetErr(redis.Nil)
	redisMock.ExpectSet(textKey(data), "fresh document", DefaultTextTTL).SetVal("OK")
	next.On("Extract", mock.Anything, mock.MatchedBy(func(doc domain.UploadedDocument) bool {
		return doc.Filename == "notes.txt" && doc.Size == int64(len(data))
	})).Return("fresh document", nil).Once()

	text, err := extractor.Extract(context.Background(), upload("notes.txt", data))
	require.NoError(t, err)
	assert.Equal(t, "fresh document", text)
	next.AssertExpectations(t)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedExtractor_CacheFailuresAreNotFatal(t *testing.T) {
	data := []byte("document")
	db, redisMock := redismock.NewClientMock()
	next := new(MockExtractor)
	extractor, err := NewCachedExtractor(next, adapter.NewRedisCacheAdapter(db), DefaultTextTTL, 0)
	require.NoError(t, err)

	redisMock.ExpectGet(textKey(data)).SetErr(errors.New("connection refused"))
	redisMock.ExpectSet(textKey(data), "document", DefaultTextTTL).SetErr(errors.New("connection refused"))
	next.On("Extract", mock.Anything, mock.Anything).Return("document", nil).Once()

	text, err := extractor.Extract(context.Background(), upload("notes.txt", data))
	require.NoError(t, err)
	assert.Equal(t, "document", text)
}

func TestCachedExtractor_ErrorsAreNotCached(t *testing.T) {
	data := []byte("%PDF-broken")
	sum := sha256.Sum256(data)
	key := "mcqgen:extract:text:" + hex.EncodeToString(sum[:]) + ":pdf"

	db, redisMock := redismock.NewClientMock()
	next := new(MockExtractor)
	extractor, err := NewCachedExtractor(next, adapter.NewRedisCacheAdapter(db), DefaultTextTTL, 0)
	require.NoError(t, err)

	redisMock.ExpectGet(key).SetErr(redis.Nil)
	next.On("Extract", mock.Anything, mock.Anything).Return("", domain.NewPDFReadError(errors.New("bad xref"))).Once()

	_, err = extractor.Extract(context.Background(), upload("paper.pdf", data))
	assert.True(t, errors.Is(err, domain.ErrPDFRead))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedExtractor_UnsupportedSkipsCache(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	extractor, err := NewCachedExtractor(new(MockExtractor), adapter.NewRedisCacheAdapter(db), DefaultTextTTL, 0)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), upload("notes.docx", []byte("x")))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestNewCachedExtractor_Validation(t *testing.T) {
	db, _ := redismock.NewClientMock()
	_, err := NewCachedExtractor(nil, adapter.NewRedisCacheAdapter(db), 0, 0)
	assert.Error(t, err)
	_, err = NewCachedExtractor(new(MockExtractor), nil, 0, 0)
	assert.Error(t, err)
}

func TestCachedExtractor_TooLargeSkipsCache(t *testing.T) {
	data := []byte("a document that is over the limit")
	db, redisMock := redismock.NewClientMock()
	next := new(MockExtractor)
	extractor, err := NewCachedExtractor(next, adapter.NewRedisCacheAdapter(db), DefaultTextTTL, 8)
	require.NoError(t, err)

	// a cached entry for these bytes must not bypass the limit
	_, err = extractor.Extract(context.Background(), upload("notes.txt", data))
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	next.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
