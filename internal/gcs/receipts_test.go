package gcs

import "testing"

func TestSplitURI(t *testing.T) {
	tests := []struct {
		in         string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://my-bucket/receipts/2024/08/abc.jpg", "my-bucket", "receipts/2024/08/abc.jpg", false},
		{"gs://my-bucket/", "", "", true},
		{"gs://my-bucket", "", "", true},
		{"https://example.com/file.jpg", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		bucket, object, err := splitURI(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitURI(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if bucket != tt.wantBucket || object != tt.wantObject {
			t.Errorf("splitURI(%q) = %q, %q; want %q, %q", tt.in, bucket, object, tt.wantBucket, tt.wantObject)
		}
	}
}

func TestObjectName(t *testing.T) {
	if got := ObjectName("gs://b/receipts/2024/08/abc.jpg"); got != "abc.jpg" {
		t.Errorf("ObjectName = %q, want abc.jpg", got)
	}
	// Malformed URIs come back unchanged.
	if got := ObjectName("nonsense"); got != "nonsense" {
		t.Errorf("ObjectName on malformed URI = %q, want input", got)
	}
}
