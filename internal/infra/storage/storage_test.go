package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/braids-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/braids-scheduler/internal/db"
)

func runContract(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "patricia_clients")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "patricia_clients", []byte(`[{"id":"1"}]`)))
	got, err := s.Get(ctx, "patricia_clients")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, s.Set(ctx, "patricia_clients", []byte(`[]`)))
	got, err = s.Get(ctx, "patricia_clients")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Clear(ctx, "patricia_clients"))
	_, err = s.Get(ctx, "patricia_clients")
	require.ErrorIs(t, err, ErrNotFound)

	// clearing twice is not an error
	require.NoError(t, s.Clear(ctx, "patricia_clients"))
}

func TestMemory(t *testing.T) {
	runContract(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", v))
	v[0] = 'x'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	runContract(t, f)
}

func TestFile_RejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, f.Set(context.Background(), "../escape", []byte("x")))
	_, err = f.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestGorm_SQLite(t *testing.T) {
	db, err := dbpkg.NewDB(&config.Config{
		StorageDriver: "sqlite",
		SQLitePath:    filepath.Join(t.TempDir(), "braids.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbpkg.Close(db) })

	runContract(t, NewGorm(db))
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runContract(t, NewRedis(client))
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	api := &fakeS3{objects: map[string][]byte{}}
	runContract(t, NewS3(api, "bucket", "state/"))

	require.NoError(t, NewS3(api, "bucket", "state/").Set(context.Background(), "patricia_kanban", []byte("[]")))
	assert.Contains(t, api.objects, "state/patricia_kanban.json")
}

type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]dynamotypes.AttributeValue
}

func keyOf(k map[string]dynamotypes.AttributeValue) string {
	return k["key"].(*dynamotypes.AttributeValueMemberS).Value
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, keyOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamo(t *testing.T) {
	runContract(t, NewDynamo(&fakeDynamo{items: map[string]map[string]dynamotypes.AttributeValue{}}, "braids_state"))
}

func TestOpen_MemoryAndFile(t *testing.T) {
	s, closeFn, err := Open(context.Background(), &config.Config{StorageDriver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
	assert.NoError(t, closeFn())

	s, _, err = Open(context.Background(), &config.Config{StorageDriver: "file", DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, _, err = Open(context.Background(), &config.Config{StorageDriver: "floppy"})
	assert.Error(t, err)
}

func TestOpen_S3KeysAreNotPrefixedTwice(t *testing.T) {
	cfg := &config.Config{
		StorageDriver: "s3",
		StoragePrefix: "patricia_",
		AWSRegion:     "us-east-1",
		AWSAccessKey:  "test",
		AWSSecretKey:  "test",
		S3Bucket:      "braids",
		S3Endpoint:    "http://localhost:4566",
	}

	st, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	s3st, ok := st.(*S3)
	require.True(t, ok)
	assert.Equal(t, "patricia_clients.json", aws.ToString(s3st.objectKey("patricia_clients")))

	cfg.S3Prefix = "state/"
	st, _, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "state/patricia_clients.json", aws.ToString(st.(*S3).objectKey("patricia_clients")))
}
