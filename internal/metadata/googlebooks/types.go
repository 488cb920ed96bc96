package googlebooks

// Draft is a pre-filled book record built from a volume lookup. Field names
// line up with the book-list payload so clients can submit it unchanged.
type Draft struct {
	Title           string `json:"title"`
	AuthorFirstName string `json:"author_first_name,omitempty"`
	AuthorLastName  string `json:"author_last_name,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	ISBN            string `json:"isbn"`
	ImagePath       string `json:"imagePath,omitempty"`
}

// volumesResponse is the raw volumes API response.
type volumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	PublishedDate string     `json:"publishedDate"`
	ImageLinks    imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}
