package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/config"
	"github.com/maxton76/stall-bokning-sub012/internal/repository"
	"github.com/maxton76/stall-bokning-sub012/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var stableID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机成员, 2: 插入历史排班表, 3: 插入草稿排班表)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量（成员个数 / 历史周数 / 草稿天数）")
	flag.Int64Var(&stableID, "stable-id", 1, "马厩 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		seed.SeedMembers(repo, stableID, n)
	case 2:
		seed.SeedHistory(repo, stableID, n)
	case 3:
		seed.SeedDraftSchedule(repo, stableID, n)
	default:
		logger.Error("无效的操作", "op", op)
	}
}
