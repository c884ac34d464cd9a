package utils

const UserAgent = "Mozilla/5.0 (compatible; pexelsbot/1.0; +https://github.com/Brawl345/pexelsbot)"
