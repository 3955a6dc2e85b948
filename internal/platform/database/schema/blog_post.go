package schema

// BlogPostTable represents the 'blog_post' table
type BlogPostTable struct {
	Table           string
	ID              string
	Title           string
	Slug            string
	Excerpt         string
	Content         string
	FeaturedImage   string
	Author          string
	Tags            string
	MetaDescription string
	SEOKeywords     string
	Published       string
	PublishDate     string
	UpdatedAt       string
	Views           string
	ReadingTime     string
	SearchVector    string
}

// BlogPost is the schema definition for blog_post
var BlogPost = BlogPostTable{
	Table:           "blog_post",
	ID:              "id",
	Title:           "title",
	Slug:            "slug",
	Excerpt:         "excerpt",
	Content:         "content",
	FeaturedImage:   "featured_image",
	Author:          "author",
	Tags:            "tags",
	MetaDescription: "meta_description",
	SEOKeywords:     "seo_keywords",
	Published:       "published",
	PublishDate:     "publish_date",
	UpdatedAt:       "updated_at",
	Views:           "views",
	ReadingTime:     "reading_time",
	SearchVector:    "search_vector",
}
