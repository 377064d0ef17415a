package catalog

import "kv.dev/portfolio/internal/models"

// SeedProjects returns the records written to an empty store on first run
func SeedProjects() []models.Project {
	return []models.Project{
		{
			Title:       "Telehealth vs. In-Person Care Data Analysis",
			Description: "A data science analysis comparing telehealth and in-person patient satisfaction using U.S. survey data, resulting in an inconclusive conclusion.",
			Link:        "#",
			Tags:        []string{"Education", "Python"},
			Thumbnail: models.Thumbnail{Image: &models.ImagePair{
				WebpSrc:      "assets/img/remote-doctor.webp",
				WebpType:     "image/webp",
				FallbackSrc:  "assets/img/remote-doctor.jpg",
				FallbackType: "image/jpg",
				Alt:          "A thumbnail with a remote consultation with a doctor virtually",
			}},
		},
		{
			Title:       "Developer Journal CRUD Website",
			Description: "A team-based project aiming to create a developer journal CRUD app in efforts to learn the fundamentals and processes of software engineering.",
			Link:        "#",
			Tags:        []string{"HTML", "CSS", "JS"},
			Thumbnail: models.Thumbnail{Image: &models.ImagePair{
				WebpSrc:      "assets/img/developer-journal.webp",
				WebpType:     "image/webp",
				FallbackSrc:  "assets/img/developer-journal.png",
				FallbackType: "image/png",
				Alt:          "A thumbnail screenshot of the homepage of the developer journal website",
			}},
		},
		{
			Title:       "Custom RISC 'FloatLite' Processor",
			Description: "Designed a minimal and custom load-store ISA named 'FloatLite' to be able to run certain programs that involve float conversion.",
			Link:        "#",
			Tags:        []string{"Python", "SystemVerilog", "MIPS"},
			Thumbnail: models.Thumbnail{Image: &models.ImagePair{
				WebpSrc:      "assets/img/floatlite-thumbnail.webp",
				WebpType:     "image/webp",
				FallbackSrc:  "assets/img/floatlite-thumbnail.png",
				FallbackType: "image/png",
				Alt:          "A thumbnail screenshot of the floatlite ISA architecture schematic",
			}},
		},
		{
			Title:       "UART Data Encryption / Decryption",
			Description: "Designed and implemented UART data encryption and decryption system using Arduino and C/C++, enabling secure serial communication.",
			Link:        "#",
			Tags:        []string{"Arduino", "C/C++", "Electronics"},
			Thumbnail: models.Thumbnail{Image: &models.ImagePair{
				WebpSrc:      "assets/img/arduino-thumbnail.webp",
				WebpType:     "image/webp",
				FallbackSrc:  "assets/img/arduino-thumbnail.jpg",
				FallbackType: "image/jpg",
				Alt:          "A thumbnail of an arduino microprocessor",
			}},
		},
	}
}
