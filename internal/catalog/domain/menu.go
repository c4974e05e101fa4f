package domain

type Image struct {
	ID  int64
	URL string
}

type Menu struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Quantity    int64
	Images      []Image
}

type Pagination struct {
	Page      int
	Limit     int
	TotalData int
	TotalPage int
}

type Page struct {
	Items      []Menu
	Pagination Pagination
}

type ListQuery struct {
	Limit  int
	Page   int
	Search string
}

// Upload is one image file attached to a menu form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MenuInput is the admin create/edit form.
type MenuInput struct {
	Name         string
	Description  string
	Price        int64
	Quantity     int64
	Images       []Upload
	DeleteImages []int64
}
