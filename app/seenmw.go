package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"smartlib/db"
)

// TouchLastSeen records user activity at most once per throttle window,
// using redis SETNX as the rate gate so the DB is not hit per request.
func TouchLastSeen(users db.UserStore, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("userID")
		if !ok {
			c.Next()
			return
		}
		uid, _ := v.(string)
		if uid == "" {
			c.Next()
			return
		}

		key := "user:lastseen:" + uid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = users.TouchUserSeen(c, uid) // best effort, never blocks the request
		}
		c.Next()
	}
}
