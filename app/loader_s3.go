package app

import (
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/external"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/s3iface"
	"github.com/pkg/errors"
)

const s3LoadTimeout = time.Minute

// S3Loader is a FileLoader that loads objects from S3, addressed as
// s3://bucket/key.
type S3Loader struct {
	s3 s3iface.ClientAPI
}

// NewS3Loader returns an S3Loader backed by client.
func NewS3Loader(client s3iface.ClientAPI) *S3Loader {
	return &S3Loader{s3: client}
}

// Load implements FileLoader.Load.
func (l S3Loader) Load(url *url.URL) ([]byte, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s3LoadTimeout)
	defer cancel()

	resp, err := l.s3.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}).Send(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", url.String())
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// parseS3URL splits url into its bucket and object key. The key loses the
// leading '/' of the URL path, which the SDK does not expect.
func parseS3URL(url *url.URL) (bucket, key string, err error) {
	if url.Scheme != "s3" {
		return "", "", errors.Errorf("invalid scheme: %s", url.Scheme)
	}
	if url.Host == "" {
		return "", "", errors.New("missing bucket")
	}
	if len(url.Path) <= 1 {
		return "", "", errors.New("missing key")
	}

	return url.Host, url.Path[1:], nil
}

func init() {
	var once sync.Once

	var loader FileLoader
	var initErr error

	ctor := func() (FileLoader, error) {
		once.Do(func() {
			cfg, err := external.LoadDefaultAWSConfig()
			if err != nil {
				initErr = errors.Wrap(err, "failed to initialize S3Loader")
				return
			}

			loader = NewS3Loader(s3.New(cfg))
		})

		if initErr != nil {
			return nil, initErr
		}

		return loader, nil
	}

	RegisterFileLoaderCtor("s3", ctor)
}
