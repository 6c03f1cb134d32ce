package gcs

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SignedURL returns a V2-signed PUT URL clients use to upload an object
// directly to the bucket. The content type is part of the signature, so the
// uploader must send the same value.
func (c *Client) SignedURL(bucket, object, contentType string, expires time.Duration) (string, error) {
	if contentType == "" {
		return "", errors.New("content type is required")
	}
	return c.signV2("PUT", bucket, object, contentType, expires)
}

// SignedReadURL returns a V2-signed GET URL for downloading an object.
func (c *Client) SignedReadURL(bucket, object string, expires time.Duration) (string, error) {
	return c.signV2("GET", bucket, object, "", expires)
}

func (c *Client) signV2(verb, bucket, object, contentType string, expires time.Duration) (string, error) {
	if c == nil || c.serviceAccount == nil || c.serviceAccount.privateKey == nil {
		return "", errors.New("signed urls require service account credentials")
	}
	if bucket == "" {
		bucket = c.defaultBucket
	}
	if bucket == "" || object == "" {
		return "", errors.New("bucket and object are required")
	}
	if expires <= 0 {
		return "", errors.New("expiry must be positive")
	}

	expiry := strconv.FormatInt(time.Now().Add(expires).Unix(), 10)
	resource := "/" + bucket + "/" + object

	payload := verb + "\n\n" + contentType + "\n" + expiry + "\n" + resource
	signature, err := signPayload(payload, c.serviceAccount.privateKey)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("GoogleAccessId", c.serviceAccount.clientEmail)
	query.Set("Expires", expiry)
	query.Set("Signature", base64.StdEncoding.EncodeToString(signature))

	return fmt.Sprintf("https://storage.googleapis.com%s?%s", resource, query.Encode()), nil
}

func signPayload(payload string, key *rsa.PrivateKey) ([]byte, error) {
	hash := sha256.Sum256([]byte(payload))
	return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hash[:])
}
