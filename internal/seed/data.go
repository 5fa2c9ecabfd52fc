package seed

import "github.com/andrewwphillips/ntlango/internal/model"

// Categories are the standard event categories
var Categories = []model.EventCategory{
	{Name: "Arts", IconName: "PaintBrushIcon", Description: "Artistic and creative events", Color: "#FFC0CB"},
	{Name: "Music", IconName: "MusicalNoteIcon", Description: "Music concerts, performances, and festivals", Color: "#FFD700"},
	{Name: "Technology", IconName: "CpuChipIcon", Description: "Events related to technology and innovation", Color: "#00BFFF"},
	{Name: "Health", IconName: "HeartIcon", Description: "Health and wellness workshops and activities", Color: "#FF6347"},
	{Name: "Fitness", IconName: "DumbbellIcon", Description: "Fitness classes, workouts, and challenges", Color: "#FFA07A"},
	{Name: "Food", IconName: "CakeIcon", Description: "Food festivals, cooking classes, and culinary events", Color: "#8A2BE2"},
	{Name: "Drinks", IconName: "WineGlassIcon", Description: "Events focused on beverages, wine tastings, and cocktails", Color: "#00CED1"},
	{Name: "Travel", IconName: "GlobeAmericasIcon", Description: "Travel-related events, adventure trips, and tours", Color: "#32CD32"},
	{Name: "Concert", IconName: "MusicIcon", Description: "Live music performances and concerts", Color: "#FF69B4"},
	{Name: "Conference", IconName: "PresentationChartBarIcon", Description: "Professional conferences, summits, and conventions", Color: "#4682B4"},
	{Name: "Networking", IconName: "UserGroupIcon", Description: "Networking events, meetups, and conferences", Color: "#1E90FF"},
}

// Group is a category group given by the slugs of its categories
type Group struct {
	Name       string
	Categories []string
}

// Groups are the standard category groups
var Groups = []Group{
	{Name: "Entertainment", Categories: []string{"arts", "music", "concert"}},
	{Name: "Lifestyle", Categories: []string{"health", "fitness", "food", "drinks", "travel"}},
	{Name: "Professional", Categories: []string{"technology", "conference", "networking"}},
}
