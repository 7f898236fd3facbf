// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package awsutil

import (
	"context"
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pkgsync/pkgsync/internal/log"
)

// ObjectPutter is the subset of the S3 client the uploader needs. The real
// *s3.Client satisfies it; tests substitute a fake.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Upload writes body to the s3://bucket/key location named by uri.
func Upload(ctx context.Context, client ObjectPutter, uri string, body []byte) error {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return err
	}

	_, err = client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
		Body:   strings.NewReader(string(body)),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}

	log.Debugf("uploaded: bucket=%s, key=%s, bytes=%d", bucket, key, len(body))
	return nil
}

// ParseS3URI splits an s3://bucket/key URI into its bucket and key parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, found := strings.CutPrefix(uri, "s3://")
	if !found {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}

	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 uri: %s", uri)
	}

	return bucket, key, nil
}
