package types

// Image is a stored reference to an uploaded asset, serialized as JSONB.
type Image struct {
	URL       string `json:"url"`
	GCSKey    string `json:"gcsKey,omitempty"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Images is the JSONB column shape for image collections.
type Images []Image

// Primary returns the image flagged as primary, falling back to the first one.
func (imgs Images) Primary() *Image {
	for i := range imgs {
		if imgs[i].IsPrimary {
			return &imgs[i]
		}
	}
	if len(imgs) > 0 {
		return &imgs[0]
	}
	return nil
}
