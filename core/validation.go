package core

import "fmt"

// ValidateChunking validates chunk splitting parameters.
//
// Rules:
//   - chunkSize must be positive
//   - overlap must satisfy 0 <= overlap < chunkSize
func ValidateChunking(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return fmt.Errorf("%w: overlap must be in [0, chunkSize), got overlap=%d chunkSize=%d",
			ErrConfiguration, overlap, chunkSize)
	}
	return nil
}

// ValidateTopK validates a query result limit.
func ValidateTopK(topK int) error {
	if topK <= 0 {
		return fmt.Errorf("%w: topK must be positive, got %d", ErrInvalidArgument, topK)
	}
	return nil
}

// ValidateDimension checks a vector against the index's configured
// dimensionality. A mismatch is a configuration error, not a per-request
// one: all upserted and query vectors must share the index dimension.
func ValidateDimension(vector []float32, dimension int) error {
	if dimension > 0 && len(vector) != dimension {
		return fmt.Errorf("%w: embedding dimension %d does not match index dimension %d",
			ErrConfiguration, len(vector), dimension)
	}
	return nil
}
