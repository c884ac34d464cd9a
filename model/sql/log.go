package sql

import "github.com/Brawl345/pexelsbot/logger"

var log = logger.New("sql")
