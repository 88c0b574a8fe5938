package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReadTime is the estimated reading time of a post.
type ReadTime struct {
	Value int    `bson:"value" json:"value"`
	Unit  string `bson:"unit" json:"unit"`
}

// Author is the denormalized author info embedded in a post.
type Author struct {
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Comment is embedded in its parent BlogPost rather than stored in its own
// collection. CommentID is a random hex token unique within the post.
type Comment struct {
	CommentID    string `bson:"commentId" json:"commentId"`
	AuthorName   string `bson:"commentAuthorName" json:"commentAuthorName"`
	AuthorAvatar string `bson:"commentAuthorAvatar" json:"commentAuthorAvatar"`
	Content      string `bson:"content" json:"content"`
}

// BlogPost is the aggregate root for the blog domain.
type BlogPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Cover    string             `bson:"cover" json:"cover"`
	ReadTime ReadTime           `bson:"readTime" json:"readTime"`
	Author   Author             `bson:"author" json:"author"`
	Content  string             `bson:"content" json:"content"`
	Comments []Comment          `bson:"comments" json:"comments"`
}
