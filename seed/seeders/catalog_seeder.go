package seeders

import (
	"errors"
	"log"

	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"gorm.io/gorm"
)

// CatalogSeeder creates the sample subjects, chapters and lectures. IDs are
// fixed so reseeding skips what exists.
type CatalogSeeder struct {
	db *gorm.DB
}

func NewCatalogSeeder(db *gorm.DB) *CatalogSeeder {
	return &CatalogSeeder{db: db}
}

type lectureSeed struct {
	id       string
	title    string
	duration int
	video    string
	content  string
}

type chapterSeed struct {
	id       string
	title    string
	test     model.ChapterTest
	lectures []lectureSeed
}

type subjectSeed struct {
	id       string
	name     string
	desc     string
	chapters []chapterSeed
}

func (s *CatalogSeeder) SeedCatalog() error {
	for si, subject := range catalog() {
		if err := createIfMissing(s.db, subject.id, subject.name, &model.Subject{
			ID:          subject.id,
			Name:        subject.name,
			Description: subject.desc,
			Order:       si + 1,
		}); err != nil {
			return err
		}

		for ci, chapter := range subject.chapters {
			if err := createIfMissing(s.db, chapter.id, chapter.title, &model.Chapter{
				ID:        chapter.id,
				SubjectID: subject.id,
				Title:     chapter.title,
				Order:     ci + 1,
				Test:      chapter.test,
			}); err != nil {
				return err
			}

			for li, lecture := range chapter.lectures {
				contentType := shared.ContentTypeVideo
				if lecture.video == "" {
					contentType = shared.ContentTypeRichText
				}
				if err := createIfMissing(s.db, lecture.id, lecture.title, &model.Lecture{
					ID:                lecture.id,
					ChapterID:         chapter.id,
					Title:             lecture.title,
					Order:             li + 1,
					EstimatedDuration: lecture.duration,
					ContentType:       contentType,
					VideoURL:          lecture.video,
					Content:           lecture.content,
				}); err != nil {
					return err
				}
			}
		}
	}

	log.Println("Catalog seeding completed successfully")
	return nil
}

func createIfMissing[T any](db *gorm.DB, id, name string, row *T) error {
	var existing T
	err := db.Where("id = ?", id).First(&existing).Error
	if err == nil {
		log.Printf("%s already exists, skipping", name)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking %s: %v", name, err)
		return err
	}

	if err := db.Create(row).Error; err != nil {
		log.Printf("Error creating %s: %v", name, err)
		return err
	}
	log.Printf("Created %s", name)
	return nil
}

const sampleVideo = "https://storage.example.com/lectures/sample.mp4"

func catalog() []subjectSeed {
	return []subjectSeed{
		{
			id:   "subject_math",
			name: "Mathematics",
			desc: "Numbers, fractions and early geometry",
			chapters: []chapterSeed{
				{
					id:    "chapter_math_fractions",
					title: "Fractions",
					test:  model.ChapterTest{Enabled: true, Title: "Fractions check", PassingPercentage: 60, AttemptsAllowed: 3},
					lectures: []lectureSeed{
						{id: "lecture_math_fractions_1", title: "What is a fraction", duration: 240, video: sampleVideo},
						{id: "lecture_math_fractions_2", title: "Halves and quarters", duration: 300, video: sampleVideo},
						{id: "lecture_math_fractions_3", title: "Comparing fractions", duration: 360, video: sampleVideo},
						{id: "lecture_math_fractions_4", title: "Fractions in daily life", content: "Recipes, clocks and pizza slices all use fractions."},
					},
				},
				{
					id:    "chapter_math_shapes",
					title: "Shapes",
					lectures: []lectureSeed{
						{id: "lecture_math_shapes_1", title: "Triangles", duration: 180, video: sampleVideo},
						{id: "lecture_math_shapes_2", title: "Squares and rectangles", duration: 210, video: sampleVideo},
					},
				},
			},
		},
		{
			id:   "subject_science",
			name: "Science",
			desc: "Living things and the world around us",
			chapters: []chapterSeed{
				{
					id:    "chapter_science_plants",
					title: "Plants",
					test:  model.ChapterTest{Enabled: true, Title: "Plant quiz", PassingPercentage: 70},
					lectures: []lectureSeed{
						{id: "lecture_science_plants_1", title: "Seeds and roots", duration: 270, video: sampleVideo},
						{id: "lecture_science_plants_2", title: "Leaves and sunlight", duration: 330, video: sampleVideo},
						{id: "lecture_science_plants_3", title: "Flowers and fruit", content: "Flowers turn into fruit that carries the next seeds."},
					},
				},
			},
		},
	}
}
