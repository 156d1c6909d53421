package util

import (
	"archive/zip"
	"bytes"
	"io"
)

// ZipBytes creates a zip archive from a map of filenames and their contents (bytes)
// ZipBytes 将文件名到内容的映射压缩为一个 zip 归档
func ZipBytes(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	for name, content := range files {
		writer, err := archive.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := writer.Write(content); err != nil {
			return nil, err
		}
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ZipBytesOrdered creates a zip archive writing entries in the given order
// ZipBytesOrdered 按给定顺序写入条目创建 zip 归档
func ZipBytesOrdered(names []string, files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	for _, name := range names {
		writer, err := archive.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := writer.Write(files[name]); err != nil {
			return nil, err
		}
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnzipBytes reads a zip archive from memory and returns a map of entry name to content
// UnzipBytes 从内存读取 zip 归档，返回条目名到内容的映射
func UnzipBytes(data []byte) (map[string][]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		files[f.Name] = content
	}
	return files, nil
}

// UnzipEntry extracts a single named entry from a zip archive in memory
// UnzipEntry 从内存中的 zip 归档提取单个命名条目
// Returns found=false when the entry does not exist
// 条目不存在时返回 found=false
func UnzipEntry(data []byte, name string) (content []byte, found bool, err error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, false, err
	}

	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, true, err
		}
		defer rc.Close()
		content, err = io.ReadAll(rc)
		if err != nil {
			return nil, true, err
		}
		return content, true, nil
	}
	return nil, false, nil
}
