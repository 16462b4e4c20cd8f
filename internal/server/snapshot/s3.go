// Package snapshot serializes wallet snapshots and stores them in an
// S3-compatible object store.
package snapshot

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophwallet/internal/cryptox"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"golang.org/x/crypto/blake2b"
)

// Settings points the exporter at a bucket.
type Settings struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
	// SealKey, when set, encrypts objects with cryptox.Seal.
	SealKey []byte
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Exporter writes snapshots as JSON objects named after their height and digest.
type S3Exporter struct {
	bucket  string
	sealKey []byte
	client  objectPutter
}

func NewS3Exporter(ctx context.Context, st Settings) (*S3Exporter, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(st.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(st.User, st.Password, "")))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if st.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(st.BaseEndpoint)
		}
		o.UsePathStyle = true
	})
	return &S3Exporter{bucket: st.Bucket, sealKey: st.SealKey, client: client}, nil
}

// Encode returns the JSON form of snap and its hex BLAKE2b-256 digest.
func Encode(snap *models.Snapshot) ([]byte, string, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, "", err
	}
	sum := blake2b.Sum256(body)
	return body, hex.EncodeToString(sum[:]), nil
}

// Key is the object name of a snapshot. Zero padding keeps keys in height order.
func Key(height uint64, digest string) string {
	return fmt.Sprintf("snapshots/%020d-%s.json", height, digest)
}

// sealedSuffix marks objects written by a sealing exporter.
const sealedSuffix = ".sealed"

// Unseal decrypts an object body written with SealKey. The digest is the
// authenticated data, so a body cannot be moved under another key.
func Unseal(body, key []byte, digest string) ([]byte, error) {
	return cryptox.Open(body, key, []byte(digest))
}

func (e *S3Exporter) Export(ctx context.Context, snap *models.Snapshot) (string, error) {
	body, digest, err := Encode(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := Key(snap.Height, digest)
	contentType := "application/json"

	if len(e.sealKey) > 0 {
		body, err = cryptox.Seal(body, e.sealKey, []byte(digest))
		if err != nil {
			return "", fmt.Errorf("seal snapshot: %w", err)
		}
		key += sealedSuffix
		contentType = "application/octet-stream"
	}

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"blake2b-256": digest},
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
