package sample

import (
	"time"

	"github.com/jsamuelsen11/go-sample-gateway/internal/domain/sample"
)

// ToDomainSample converts a downstream SampleDTO to a domain Sample. Missing
// or malformed timestamps become the zero time.
func ToDomainSample(dto *SampleDTO) sample.Sample {
	createdAt, _ := time.Parse(time.RFC3339, dto.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, dto.UpdatedAt)

	return sample.Sample{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ToDomainSampleList converts downstream samples to domain samples. A nil
// input yields an empty, non-nil slice.
func ToDomainSampleList(dtos []SampleDTO) []sample.Sample {
	samples := make([]sample.Sample, len(dtos))
	for i := range dtos {
		samples[i] = ToDomainSample(&dtos[i])
	}
	return samples
}

// ToSearchDTO converts a domain filter to downstream search criteria.
func ToSearchDTO(f sample.Filter) SearchDTO {
	return SearchDTO{
		Name:        f.Name,
		Description: f.Description,
	}
}
