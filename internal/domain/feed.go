package domain

import "encoding/xml"

// Feed is an RSS 2.0 document
type Feed struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Channel FeedChannel `xml:"channel"`
}

// FeedChannel the single channel of the feed
type FeedChannel struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Description string     `xml:"description"`
	Items       []FeedItem `xml:"item"`
}

// FeedItem one public memo
type FeedItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        FeedGUID `xml:"guid"`
	Description string   `xml:"description"`
	Author      string   `xml:"author"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

// FeedGUID permalink identifier of an item
type FeedGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}
