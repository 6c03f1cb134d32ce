package enums

import "fmt"

// MediaKind distinguishes what an uploaded object is used for.
type MediaKind string

const (
	MediaProductImage         MediaKind = "product_image"
	MediaProfileImage         MediaKind = "profile_image"
	MediaVerificationDocument MediaKind = "verification_document"
)

var validMediaKinds = []MediaKind{
	MediaProductImage,
	MediaProfileImage,
	MediaVerificationDocument,
}

func (k MediaKind) String() string {
	return string(k)
}

func (k MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseMediaKind converts raw input into a MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}

// MediaStatus tracks an upload intent through its lifecycle.
type MediaStatus string

const (
	MediaPending  MediaStatus = "pending"
	MediaUploaded MediaStatus = "uploaded"
	MediaFailed   MediaStatus = "failed"
	MediaDeleted  MediaStatus = "deleted"
)

var validMediaStatuses = []MediaStatus{
	MediaPending,
	MediaUploaded,
	MediaFailed,
	MediaDeleted,
}

func (s MediaStatus) String() string {
	return string(s)
}

func (s MediaStatus) IsValid() bool {
	for _, candidate := range validMediaStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}
